package datautil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReplaceBuiltinPlaceholders substitutes {{DATE}}, {{DATETIME}}, and
// {{TIMESTAMP}} in text with the current time. Non-string-shaped callers
// should not reach this function; it operates purely on strings.
func ReplaceBuiltinPlaceholders(text string, now time.Time) string {
	if strings.Contains(text, "{{DATE}}") {
		text = strings.ReplaceAll(text, "{{DATE}}", now.Format("2006-01-02"))
	}
	if strings.Contains(text, "{{DATETIME}}") {
		text = strings.ReplaceAll(text, "{{DATETIME}}", now.Format("2006-01-02_15-04-05"))
	}
	if strings.Contains(text, "{{TIMESTAMP}}") {
		text = strings.ReplaceAll(text, "{{TIMESTAMP}}", strconv.FormatInt(now.Unix(), 10))
	}
	return text
}

// ReplaceInputPlaceholders substitutes {{<field>}} placeholders with the
// stringified value of raw[field] for every field present in raw, plus the
// generic {{data}} placeholder resolved in order: raw["data"], then
// raw["result"], then raw["text"], then the first available value in raw
// (spec §4.3).
func ReplaceInputPlaceholders(text string, raw map[string]any) string {
	if raw == nil {
		return text
	}

	for key, value := range raw {
		placeholder := "{{" + key + "}}"
		if strings.Contains(text, placeholder) {
			text = strings.ReplaceAll(text, placeholder, stringify(value))
		}
	}

	if strings.Contains(text, "{{data}}") {
		text = strings.ReplaceAll(text, "{{data}}", stringify(genericDataValue(raw)))
	}

	return text
}

func genericDataValue(raw map[string]any) any {
	for _, key := range []string{"data", "result", "text"} {
		if v, ok := raw[key]; ok {
			return v
		}
	}
	for _, v := range raw {
		return v
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ApplyTemplates runs both the builtin date/time placeholders and the
// input-field placeholders over text, matching the order the VFS and HTTP
// executors apply them: builtin placeholders first, then input data.
func ApplyTemplates(text string, raw map[string]any, now time.Time) string {
	text = ReplaceBuiltinPlaceholders(text, now)
	text = ReplaceInputPlaceholders(text, raw)
	return text
}
