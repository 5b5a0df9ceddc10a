package planner

import (
	"fmt"
	"strings"

	"travelorbit-be/internal/constant"
	"travelorbit-be/internal/entity"
	"travelorbit-be/pkg/llm"
)

// BuildContext assembles the full prompt for one planner call: the system
// instruction, a summary line of everything already known about the trip,
// then the stored conversation replayed verbatim in chronological order.
func BuildContext(trip *entity.Trip, messages []*entity.TripMessage) []llm.Message {
	history := make([]llm.Message, 0, len(messages)+2)
	history = append(history, llm.Message{
		Role:    constant.TripMessageRoleSystem,
		Content: constant.PlannerSystemPrompt,
	})

	if summary := ContextSummary(trip); summary != "" {
		history = append(history, llm.Message{
			Role:    constant.TripMessageRoleSystem,
			Content: "Current trip context: " + summary,
		})
	}

	for _, m := range messages {
		role := constant.TripMessageRoleAssistant
		if m.Role == constant.TripMessageRoleUser {
			role = constant.TripMessageRoleUser
		}
		history = append(history, llm.Message{Role: role, Content: m.Text})
	}

	return history
}

// ContextSummary renders the non-null trip fields as a single pipe-joined
// line in a fixed key order, so repeated calls over the same trip produce
// byte-identical prompts.
func ContextSummary(trip *entity.Trip) string {
	var bits []string
	if trip.FromCity != nil {
		bits = append(bits, "From: "+*trip.FromCity)
	}
	if trip.ToCity != nil {
		bits = append(bits, "To: "+*trip.ToCity)
	}
	if trip.PartyType != nil {
		bits = append(bits, "Party type: "+string(*trip.PartyType))
	}
	if trip.BudgetLevel != nil {
		bits = append(bits, "Budget: "+string(*trip.BudgetLevel))
	}
	if trip.DurationDays != nil {
		bits = append(bits, fmt.Sprintf("Duration: %d days", *trip.DurationDays))
	}
	if trip.StartDate != nil && trip.EndDate != nil {
		bits = append(bits, fmt.Sprintf("Dates: %s to %s",
			trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02")))
	}
	if len(trip.Interests) > 0 {
		bits = append(bits, "Interests: "+strings.Join(trip.Interests, ", "))
	}
	if trip.SpecialRequirements != nil {
		bits = append(bits, "Special: "+*trip.SpecialRequirements)
	}
	return strings.Join(bits, " | ")
}

// MissingFields lists the required fields the trip still lacks, in the
// order the planner asks for them. Used to build the deterministic
// fallback reply when the model is unreachable.
func MissingFields(trip *entity.Trip) []string {
	var missing []string
	if trip.FromCity == nil {
		missing = append(missing, "departure city")
	}
	if trip.ToCity == nil {
		missing = append(missing, "destination city")
	}
	if trip.PartyType == nil {
		missing = append(missing, "who is travelling (solo, couple, friends or family)")
	}
	if trip.BudgetLevel == nil {
		missing = append(missing, "budget level (cheap, moderate or luxury)")
	}
	if trip.DurationDays == nil && (trip.StartDate == nil || trip.EndDate == nil) {
		missing = append(missing, "trip duration or travel dates")
	}
	if len(trip.Interests) == 0 {
		missing = append(missing, "travel interests")
	}
	return missing
}

// FallbackReply is the deterministic assistant message used when the
// planner call fails. It always asks for something concrete so the
// conversation can continue once the model is back.
func FallbackReply(trip *entity.Trip) string {
	missing := MissingFields(trip)
	if len(missing) == 0 {
		return "I'm having trouble reaching the planning service right now. Please send your last message again in a moment and I'll finish your itinerary."
	}
	return "I'm having trouble reaching the planning service right now. While I retry, could you confirm the following: " +
		strings.Join(missing, ", ") + "?"
}
