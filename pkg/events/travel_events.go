package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes emitted over NATS and the in-process bus.
const (
	TypeBookingConfirmed  = "BOOKING_CONFIRMED"
	TypeTripFinalized     = "TRIP_FINALIZED"
	TypeGroupConverted    = "GROUP_CONVERTED"
	TypeGroupVoteRecorded = "GROUP_VOTE_RECORDED"
	TypeDealsGenerated    = "DEALS_GENERATED"
	TypeOtpIssued         = "OTP_ISSUED"
)

// NewBookingConfirmed is emitted when a payment settles and a trip flips to paid.
func NewBookingConfirmed(tripId uuid.UUID, email, bookingNumber, title string, totalPrice float64, currency string) BaseEvent {
	return BaseEvent{
		Type: TypeBookingConfirmed,
		Data: map[string]interface{}{
			"trip_id":        tripId.String(),
			"email":          email,
			"booking_number": bookingNumber,
			"title":          title,
			"total_price":    totalPrice,
			"currency":       currency,
			"occurred_at":    time.Now(),
		},
		OccurredAt: time.Now(),
	}
}

// NewTripFinalized is emitted when the planner produces a final itinerary.
func NewTripFinalized(tripId uuid.UUID, email, title string) BaseEvent {
	return BaseEvent{
		Type: TypeTripFinalized,
		Data: map[string]interface{}{
			"trip_id":     tripId.String(),
			"email":       email,
			"title":       title,
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
}

// NewGroupConverted is emitted once when a voting group reaches quorum
// and its votes collapse into a bookable trip.
func NewGroupConverted(groupId, tripId uuid.UUID, code string, voteCount int) BaseEvent {
	return BaseEvent{
		Type: TypeGroupConverted,
		Data: map[string]interface{}{
			"group_id":    groupId.String(),
			"trip_id":     tripId.String(),
			"group_code":  code,
			"vote_count":  voteCount,
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
}

// NewDealsGenerated is emitted after a daily deal batch lands.
func NewDealsGenerated(day string, count int, fallback bool) BaseEvent {
	return BaseEvent{
		Type: TypeDealsGenerated,
		Data: map[string]interface{}{
			"day":         day,
			"count":       count,
			"fallback":    fallback,
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
}

// NewGroupVoteRecorded reports voting progress so watchers can render a
// live tally.
func NewGroupVoteRecorded(groupId uuid.UUID, code string, voteCount, expected int) BaseEvent {
	return BaseEvent{
		Type: TypeGroupVoteRecorded,
		Data: map[string]interface{}{
			"group_id":   groupId.String(),
			"code":       code,
			"vote_count": voteCount,
			"expected":   expected,
		},
		OccurredAt: time.Now(),
	}
}
