package datautil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Format is a VFS save/load data shape.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatBinary Format = "binary"
	FormatBlob   Format = "blob"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

// Normalize coerces an arbitrary value into (bytes, detected format) for a
// VFS write (spec §4.3). With formatHint FormatAuto: a map/slice normalizes
// to json, a string that parses as JSON normalizes to json, a []byte
// normalizes to binary, anything else normalizes to text. For binary with a
// string input, a long run of base64-alphabet characters is decoded;
// otherwise the string is UTF-8 encoded as-is.
func Normalize(data any, formatHint Format) ([]byte, Format, error) {
	format := formatHint
	if format == FormatAuto || format == "" {
		format = detectFormat(data)
	}

	switch format {
	case FormatJSON:
		return normalizeJSON(data)
	case FormatBinary:
		return normalizeBinary(data)
	default: // text, blob
		return normalizeText(data), FormatText, nil
	}
}

func detectFormat(data any) Format {
	switch v := data.(type) {
	case map[string]any, []any:
		return FormatJSON
	case []byte:
		return FormatBinary
	case string:
		var js any
		if json.Unmarshal([]byte(v), &js) == nil {
			return FormatJSON
		}
		return FormatText
	default:
		return FormatText
	}
}

func normalizeJSON(data any) ([]byte, Format, error) {
	switch v := data.(type) {
	case string:
		// Already a JSON(-looking) string: pass through verbatim.
		return []byte(v), FormatJSON, nil
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("normalize json: %w", err)
		}
		return b, FormatJSON, nil
	}
}

func normalizeBinary(data any) ([]byte, Format, error) {
	switch v := data.(type) {
	case []byte:
		return v, FormatBinary, nil
	case string:
		if looksLikeBase64(v) {
			if decoded, err := base64.StdEncoding.DecodeString(v); err == nil {
				return decoded, FormatBinary, nil
			}
		}
		return []byte(v), FormatBinary, nil
	default:
		return []byte(fmt.Sprintf("%v", v)), FormatBinary, nil
	}
}

func normalizeText(data any) []byte {
	if s, ok := data.(string); ok {
		return []byte(s)
	}
	return []byte(fmt.Sprintf("%v", data))
}

func looksLikeBase64(s string) bool {
	if len(s) <= 100 {
		return false
	}
	for _, c := range s {
		if !containsRune(base64Alphabet, c) {
			return false
		}
	}
	return true
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
