package datautil

// PortFieldFallbacks is the ordered candidate-source-field table for
// mapping a node's raw input onto its declared input ports (spec §4.3).
var PortFieldFallbacks = map[string][]string{
	"text":       {"text", "content", "data", "result", "response"},
	"data":       {"data", "content", "result", "text", "value"},
	"json":       {"json", "parsed_json", "data", "result"},
	"value":      {"value", "data", "result", "content", "text"},
	"url":        {"url", "uri", "link", "address", "path"},
	"condition":  {"result", "data", "content", "text", "value"},
	"image_data": {"data", "image_data", "image", "url", "file_path"},
	"audio_data": {"data", "audio_data", "audio", "url", "file_path"},
	"prompt":     {"text", "prompt", "data", "content", "value"},
	"trigger":    {"trigger", "data", "value"},
}

// ResolvePort finds a value for the named port in raw, first checking the
// exact port name, then the ordered fallback fields for that port, and
// finally falling back to an arbitrary value from raw (matching §4.5.4:
// "supply the entire source result as the port's value" when nothing named
// matches). The second return is false only when raw is empty or nil.
func ResolvePort(raw map[string]any, port string) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	if v, ok := raw[port]; ok {
		return v, true
	}
	for _, field := range PortFieldFallbacks[port] {
		if v, ok := raw[field]; ok {
			return v, true
		}
	}
	for _, v := range raw {
		return v, true
	}
	return nil, false
}

// MapInputForNode reproduces the port-mapping pass applied when raw input
// isn't already keyed by the node's declared input ports (spec §4.3,
// processInputDataForNode): if raw already contains at least one declared
// port id, it is returned unchanged; otherwise each declared port is
// resolved independently via ResolvePort.
func MapInputForNode(raw map[string]any, inputPorts []string) map[string]any {
	if raw == nil {
		return nil
	}

	for _, port := range inputPorts {
		if _, ok := raw[port]; ok {
			return raw
		}
	}

	if len(inputPorts) == 0 {
		return raw
	}

	mapped := make(map[string]any, len(inputPorts))
	for _, port := range inputPorts {
		if v, ok := ResolvePort(raw, port); ok {
			mapped[port] = v
		}
	}
	return mapped
}
