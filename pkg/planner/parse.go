package planner

import (
	"encoding/json"
	"strings"

	"travelorbit-be/internal/entity"
)

// Marker separates the human-readable section of a planner reply from the
// machine section.
const Marker = "---JSON---"

// Payload is the machine section of one planner turn.
type Payload struct {
	IsFinal       bool                   `json:"is_final_itinerary"`
	UpdatedFields map[string]interface{} `json:"updated_fields"`
	Itinerary     *entity.Itinerary      `json:"itinerary"`
}

// SplitResponse splits raw model output into the human reply and, when one
// can be recovered, the structured payload. Parsing is best-effort: a
// missing or broken JSON section degrades to a nil payload, never an error.
func SplitResponse(raw string) (string, *Payload) {
	human := raw
	candidate := raw

	if idx := strings.Index(raw, Marker); idx >= 0 {
		human = raw[:idx]
		candidate = raw[idx+len(Marker):]
	}

	payload := parsePayload(candidate)
	if payload == nil && candidate != raw {
		// Marker was present but its JSON was unusable; some models drop
		// the marker in the wrong place, so scan the whole output once.
		payload = parsePayload(raw)
	}

	human = strings.TrimSpace(human)
	if payload != nil && !strings.Contains(raw, Marker) {
		// Without a marker the extracted JSON is still sitting inside the
		// human text; cut it out.
		if jsonStart := strings.Index(human, "{"); jsonStart >= 0 {
			human = strings.TrimSpace(human[:jsonStart])
		}
	}

	return human, payload
}

// parsePayload extracts the first balanced JSON object from s and decodes
// it. Returns nil when nothing parseable is found.
func parsePayload(s string) *Payload {
	blob := ExtractJSONObject(s)
	if blob == "" {
		return nil
	}

	var payload Payload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil
	}
	return &payload
}

// ExtractJSONObject locates the first '{' in s and returns the substring
// up to its matching '}' by brace-depth counting. Code fences are stripped
// first. Returns "" when no balanced object exists.
func ExtractJSONObject(s string) string {
	s = stripCodeFences(s)

	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
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

// RepairTruncatedJSON closes any unbalanced braces at the end of a JSON
// fragment. Model output is sometimes cut off mid-object; appending the
// missing closers often yields something decodable.
func RepairTruncatedJSON(s string) string {
	s = stripCodeFences(s)

	start := strings.Index(s, "{")
	if start < 0 {
		return s
	}
	s = strings.TrimSpace(s[start:])

	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
	}

	s = strings.TrimRight(s, ",")
	for ; depth > 0; depth-- {
		s += "}"
	}
	return s
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return s
}

// ExtractJSONArray is the array counterpart of ExtractJSONObject, used for
// batch outputs like the daily deal generation.
func ExtractJSONArray(s string) string {
	s = stripCodeFences(s)

	start := strings.Index(s, "[")
	if start < 0 {
		return ""
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	// Unbalanced: try closing the truncated tail.
	return RepairTruncatedArray(s[start:])
}

// RepairTruncatedArray closes unbalanced brackets and braces at the end of
// a JSON array fragment.
func RepairTruncatedArray(s string) string {
	var stack []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '{':
			stack = append(stack, s[i])
		case ']', '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	s = strings.TrimRight(strings.TrimSpace(s), ",")
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '[' {
			s += "]"
		} else {
			s += "}"
		}
	}
	return s
}
