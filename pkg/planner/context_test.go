package planner

import (
	"strings"
	"testing"
	"time"

	"travelorbit-be/internal/constant"
	"travelorbit-be/internal/entity"
)

func TestContextSummaryStableOrder(t *testing.T) {
	party := entity.PartyTypeCouple
	budget := entity.BudgetModerate
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	days := 4

	trip := &entity.Trip{
		FromCity:     strPtr("Mumbai"),
		ToCity:       strPtr("Goa"),
		PartyType:    &party,
		BudgetLevel:  &budget,
		DurationDays: &days,
		StartDate:    &start,
		EndDate:      &end,
		Interests:    []string{"food", "relaxation"},
	}

	want := "From: Mumbai | To: Goa | Party type: couple | Budget: moderate | Duration: 4 days | Dates: 2026-10-01 to 2026-10-05 | Interests: food, relaxation"
	if got := ContextSummary(trip); got != want {
		t.Errorf("summary = %q\nwant      %q", got, want)
	}

	// Same trip, same line, every time.
	if ContextSummary(trip) != ContextSummary(trip) {
		t.Error("summary is not deterministic")
	}
}

func TestContextSummaryEmptyTrip(t *testing.T) {
	if got := ContextSummary(&entity.Trip{}); got != "" {
		t.Errorf("empty trip should produce empty summary, got %q", got)
	}
}

func TestBuildContextReplaysHistoryVerbatim(t *testing.T) {
	trip := &entity.Trip{ToCity: strPtr("Goa")}
	messages := []*entity.TripMessage{
		{Role: "user", Text: "Plan a trip to Goa"},
		{Role: "assistant", Text: "For how many days?"},
		{Role: "user", Text: "4 days"},
		{Role: "user", Text: "with my partner"}, // double-submit, not forced to alternate
	}

	history := BuildContext(trip, messages)

	if len(history) != 6 {
		t.Fatalf("history length = %d, want system + summary + 4 turns", len(history))
	}
	if history[0].Role != constant.TripMessageRoleSystem {
		t.Errorf("first message role = %q", history[0].Role)
	}
	if !strings.HasPrefix(history[1].Content, "Current trip context: ") {
		t.Errorf("summary line missing: %q", history[1].Content)
	}
	for i, m := range messages {
		if history[i+2].Content != m.Text {
			t.Errorf("turn %d content = %q, want %q", i, history[i+2].Content, m.Text)
		}
	}
	if history[4].Role != "user" || history[5].Role != "user" {
		t.Error("consecutive user turns were not replayed as stored")
	}
}

func TestBuildContextSkipsSummaryForEmptyTrip(t *testing.T) {
	history := BuildContext(&entity.Trip{}, nil)
	if len(history) != 1 {
		t.Fatalf("history length = %d, want just the system prompt", len(history))
	}
}

func TestFallbackReplyListsMissingFields(t *testing.T) {
	reply := FallbackReply(&entity.Trip{ToCity: strPtr("Goa")})
	for _, want := range []string{"departure city", "budget level", "travel interests"} {
		if !strings.Contains(reply, want) {
			t.Errorf("fallback %q missing %q", reply, want)
		}
	}
	if strings.Contains(reply, "destination city") {
		t.Errorf("fallback asks for already-known destination: %q", reply)
	}

	// Deterministic per trip state.
	if reply != FallbackReply(&entity.Trip{ToCity: strPtr("Goa")}) {
		t.Error("fallback reply is not deterministic")
	}
}

func TestShouldReset(t *testing.T) {
	tests := []struct {
		name   string
		status entity.TripStatus
		text   string
		turns  int
		want   bool
	}{
		{"paid trip always resets", entity.TripStatusPaid, "hello again", 10, true},
		{"cancelled trip always resets", entity.TripStatusCancelled, "hi", 0, true},
		{"restart phrase on mature draft", entity.TripStatusDraft, "start over", 6, true},
		{"restart phrase on planned trip", entity.TripStatusPlanned, "new trip", 1, true},
		{"restart phrase on fresh draft stays", entity.TripStatusDraft, "new trip", 1, false},
		{"ordinary message never resets", entity.TripStatusDraft, "make it 5 days", 8, false},
		{"phrase embedded mid-sentence ignored", entity.TripStatusPlanned, "I loved the new trip ideas", 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := &entity.Trip{Status: tt.status}
			if got := ShouldReset(trip, tt.text, tt.turns); got != tt.want {
				t.Errorf("ShouldReset = %v, want %v", got, tt.want)
			}
		})
	}
}
