package planner

import (
	"encoding/json"
	"testing"
)

func TestSplitResponse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantHuman   string
		wantPayload bool
		wantFinal   bool
	}{
		{
			name:        "marker with valid json",
			raw:         "Here is your plan so far.\n---JSON---\n{\"is_final_itinerary\": false, \"updated_fields\": {\"to_city\": \"Goa\"}}",
			wantHuman:   "Here is your plan so far.",
			wantPayload: true,
		},
		{
			name:        "marker with fenced json",
			raw:         "Sounds great!\n---JSON---\n```json\n{\"is_final_itinerary\": true, \"itinerary\": {\"title\": \"Goa Escape\", \"days\": []}}\n```",
			wantHuman:   "Sounds great!",
			wantPayload: true,
			wantFinal:   true,
		},
		{
			name:        "no marker, json embedded in text",
			raw:         "Noted, updating your trip.\n{\"is_final_itinerary\": false, \"updated_fields\": {\"duration_days\": 4}}",
			wantHuman:   "Noted, updating your trip.",
			wantPayload: true,
		},
		{
			name:        "marker but broken json after it",
			raw:         "Reply text\n---JSON---\nnot json at all",
			wantHuman:   "Reply text",
			wantPayload: false,
		},
		{
			name:        "plain text only",
			raw:         "Which city are you travelling from?",
			wantHuman:   "Which city are you travelling from?",
			wantPayload: false,
		},
		{
			name:        "empty human before marker",
			raw:         "---JSON---\n{\"is_final_itinerary\": false}",
			wantHuman:   "",
			wantPayload: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			human, payload := SplitResponse(tt.raw)
			if human != tt.wantHuman {
				t.Errorf("human = %q, want %q", human, tt.wantHuman)
			}
			if (payload != nil) != tt.wantPayload {
				t.Fatalf("payload presence = %v, want %v", payload != nil, tt.wantPayload)
			}
			if payload != nil && payload.IsFinal != tt.wantFinal {
				t.Errorf("IsFinal = %v, want %v", payload.IsFinal, tt.wantFinal)
			}
		})
	}
}

func TestSplitResponseNestedBraces(t *testing.T) {
	raw := "Done!\n---JSON---\n{\"is_final_itinerary\": true, \"itinerary\": {\"title\": \"T\", \"days\": [{\"day\": 1, \"title\": \"D1\", \"activities\": [{\"name\": \"Beach\"}]}]}} trailing noise"
	_, payload := SplitResponse(raw)
	if payload == nil {
		t.Fatal("expected payload")
	}
	if payload.Itinerary == nil || len(payload.Itinerary.Days) != 1 {
		t.Fatalf("itinerary not parsed: %+v", payload.Itinerary)
	}
	if payload.Itinerary.Days[0].Activities[0].Name != "Beach" {
		t.Errorf("unexpected activity: %+v", payload.Itinerary.Days[0].Activities)
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `prefix {"a": 1} suffix`, `{"a": 1}`},
		{"nested", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"unbalanced", `{"a": 1`, ""},
		{"no object", "just text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONObject(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairTruncatedJSON(t *testing.T) {
	truncated := `{"title": "Goa Deal", "itinerary": {"days": [{"day": 1`
	repaired := RepairTruncatedJSON(truncated + `}]`)

	var target map[string]interface{}
	if err := json.Unmarshal([]byte(repaired), &target); err != nil {
		t.Fatalf("repaired JSON still invalid: %v\n%s", err, repaired)
	}
	if target["title"] != "Goa Deal" {
		t.Errorf("title lost during repair: %v", target)
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare array",
			raw:  `[{"destination": "Goa"}, {"destination": "Bali"}]`,
			want: `[{"destination": "Goa"}, {"destination": "Bali"}]`,
		},
		{
			name: "array inside prose",
			raw:  "Here are the deals:\n[{\"destination\": \"Goa\"}]\nEnjoy!",
			want: `[{"destination": "Goa"}]`,
		},
		{
			name: "fenced array",
			raw:  "```json\n[{\"a\": 1}]\n```",
			want: `[{"a": 1}]`,
		},
		{
			name: "no array",
			raw:  "sorry, I cannot do that",
			want: "",
		},
		{
			name: "nested brackets balanced",
			raw:  `[{"inclusions": ["hotel", "breakfast"]}]`,
			want: `[{"inclusions": ["hotel", "breakfast"]}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONArray(tt.raw); got != tt.want {
				t.Errorf("ExtractJSONArray() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairTruncatedArray(t *testing.T) {
	got := RepairTruncatedArray(`[{"destination": "Goa", "inclusions": ["hotel"`)
	if got != `[{"destination": "Goa", "inclusions": ["hotel"]}]` {
		t.Errorf("RepairTruncatedArray() = %q", got)
	}
}
