package parser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// modelResponse is the raw JSON shape the model is instructed to emit.
type modelResponse struct {
	Intent      string                 `json:"intent"`
	Entities    map[string]interface{} `json:"entities"`
	Confidence  *float64               `json:"confidence"`
	MissingInfo []string               `json:"missing_info"`
}

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// decodeResponse recovers a structured result from whatever text the model
// produced. It tries the whole response as JSON, then a fenced code block,
// then the first balanced brace span. When nothing parses it synthesizes a
// HELP result at zero confidence so the caller still gets a usable intent.
func decodeResponse(response string) modelResponse {
	var out modelResponse
	if err := json.Unmarshal([]byte(response), &out); err == nil {
		return out
	}

	if m := fencedJSONPattern.FindStringSubmatch(response); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &out); err == nil {
			return out
		}
	}

	if span := firstBalancedObject(response); span != "" {
		if err := json.Unmarshal([]byte(span), &out); err == nil {
			return out
		}
	}

	zero := 0.0
	return modelResponse{
		Intent:      string(IntentHelp),
		Entities:    map[string]interface{}{},
		Confidence:  &zero,
		MissingInfo: []string{"无法解析响应"},
	}
}

// firstBalancedObject returns the first top-level {...} span in s, tracking
// brace depth and skipping braces inside JSON string literals.
func firstBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
