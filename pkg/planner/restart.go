package planner

import (
	"strings"

	"travelorbit-be/internal/constant"
	"travelorbit-be/internal/entity"
)

// freshDraftTurns is the number of stored turns below which a draft is
// still considered fresh; restart phrases on a fresh draft are treated as
// ordinary conversation.
const freshDraftTurns = 2

// IsRestartPhrase reports whether the inbound text asks for a new session.
func IsRestartPhrase(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range constant.RestartPhrases {
		if normalized == phrase || strings.HasPrefix(normalized, phrase+" ") {
			return true
		}
	}
	return false
}

// ShouldReset decides whether the inbound message must open a brand-new
// trip instead of mutating the current one. A paid or cancelled trip
// always resets; a restart phrase resets only once the session is past the
// fresh-draft stage, so "start over" as a literal first message still
// reads as conversation.
func ShouldReset(trip *entity.Trip, text string, storedTurns int) bool {
	if trip == nil {
		return false
	}
	if trip.Status == entity.TripStatusPaid || trip.Status == entity.TripStatusCancelled {
		return true
	}
	if !IsRestartPhrase(text) {
		return false
	}
	return trip.Status != entity.TripStatusDraft || storedTurns > freshDraftTurns
}
