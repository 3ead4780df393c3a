// Package datautil implements the pure, side-effect-free data shaping used
// throughout node execution: nested JSON-path extraction, port-name
// fallback mapping, template placeholder substitution, and VFS data
// normalization. Executors must not reimplement these locally.
package datautil

import (
	"regexp"
	"strconv"
	"strings"
)

var arrayIndexPattern = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// Extract walks a dotted path like "items[0].name" through a JSON-shaped
// value (maps, slices, scalars as produced by encoding/json). Any missing
// or mistyped segment yields nil rather than an error.
func Extract(obj any, path string) any {
	if obj == nil || path == "" {
		return obj
	}

	current := obj
	for _, key := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}
		current = extractSegment(current, key)
	}
	return current
}

func extractSegment(current any, key string) any {
	if m := arrayIndexPattern.FindStringSubmatch(key); m != nil {
		arrayKey, idxStr := m[1], m[2]
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return nil
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		arr, ok := obj[arrayKey].([]any)
		if !ok || idx < 0 || idx >= len(arr) {
			return nil
		}
		return arr[idx]
	}

	obj, ok := current.(map[string]any)
	if !ok {
		return nil
	}
	v, ok := obj[key]
	if !ok {
		return nil
	}
	return v
}
