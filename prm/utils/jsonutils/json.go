package jsonutils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reFence         = regexp.MustCompile("(?s)```json(.*?)```")
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractStructuredPayload pulls a JSON object out of free-form model output.
//
// Priority:
// 1. Triple-backtick fenced ```json ... ```
// 2. The span from the first '{' to the last '}'
//
// If the decoded object carries an "output" field the payload is unwrapped
// one level; "output" may itself be a JSON-encoded string (possibly fenced
// again), which gets a second decode. Nothing here ever panics: any failure
// reports (nil, false).
func ExtractStructuredPayload(input string) (map[string]interface{}, bool) {
	input = stripInvisible(input)

	if inner, ok := fencedBlock(input); ok {
		if obj, ok := parseObject(inner); ok {
			return unwrapOutput(obj)
		}
	}
	if span, ok := braceSpan(input); ok {
		if obj, ok := parseObject(span); ok {
			return unwrapOutput(obj)
		}
	}
	return nil, false
}

// stripInvisible removes BOMs and zero-width characters that models
// occasionally emit around JSON blocks.
func stripInvisible(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, s))
}

func fencedBlock(s string) (string, bool) {
	if match := reFence.FindStringSubmatch(s); len(match) > 1 {
		return strings.TrimSpace(match[1]), true
	}
	return "", false
}

func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func parseObject(s string) (map[string]interface{}, bool) {
	// drop trailing commas before closing braces/brackets
	s = reTrailingComma.ReplaceAllString(strings.TrimSpace(s), "$1")
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// unwrapOutput unwraps a single "output" envelope level. A string-valued
// "output" gets one more decode attempt; when that fails the envelope itself
// is returned so the caller can fall back to raw-text display.
func unwrapOutput(obj map[string]interface{}) (map[string]interface{}, bool) {
	out, present := obj["output"]
	if !present {
		return obj, true
	}
	switch v := out.(type) {
	case map[string]interface{}:
		return v, true
	case string:
		s := stripInvisible(v)
		if inner, ok := fencedBlock(s); ok {
			s = inner
		}
		if nested, ok := parseObject(s); ok {
			return nested, true
		}
		return obj, true
	default:
		return obj, true
	}
}

// ToJSON serializes a Go value to a JSON string with indentation.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
