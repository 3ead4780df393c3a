package workflow

import "strconv"

// ConfigValue returns the raw value of a config parameter and whether it was
// present at all (as distinct from present-but-nil).
func (n *Node) ConfigValue(name string) (any, bool) {
	if n == nil || n.Config == nil {
		return nil, false
	}
	param, ok := n.Config[name]
	return param.Value, ok
}

// ConfigString returns a config parameter coerced to a string, or def if
// absent. Non-string values are rendered with a best-effort conversion
// rather than failing: config authored in a JSON editor routinely carries
// numbers or booleans where a node expects a string.
func (n *Node) ConfigString(name, def string) string {
	v, ok := n.ConfigValue(name)
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return def
	}
}

// ConfigBool returns a config parameter coerced to bool, or def if absent or
// unparseable. Accepts both a native boolean and the string forms "true"/
// "false" that hand-authored workflow JSON tends to use.
func (n *Node) ConfigBool(name string, def bool) bool {
	v, ok := n.ConfigValue(name)
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// ConfigFloat returns a config parameter coerced to float64, or def if
// absent or unparseable.
func (n *Node) ConfigFloat(name string, def float64) float64 {
	v, ok := n.ConfigValue(name)
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// ConfigInt returns a config parameter coerced to int, or def if absent or
// unparseable.
func (n *Node) ConfigInt(name string, def int) int {
	return int(n.ConfigFloat(name, float64(def)))
}
