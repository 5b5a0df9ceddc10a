package service

import (
	"testing"

	"travelorbit-be/internal/entity"
)

func intRef(n int) *int                                  { return &n }
func budgetRef(b entity.BudgetLevel) *entity.BudgetLevel { return &b }
func partyRef(p entity.PartyType) *entity.PartyType      { return &p }

func TestEstimateTripPrice(t *testing.T) {
	tests := []struct {
		name string
		trip entity.Trip
		want float64
	}{
		{
			name: "couple moderate five days",
			trip: entity.Trip{
				PartyType:    partyRef(entity.PartyTypeCouple),
				DurationDays: intRef(5),
				BudgetLevel:  budgetRef(entity.BudgetModerate),
			},
			want: 2 * 5 * 1500,
		},
		{
			name: "family cheap with explicit counts",
			trip: entity.Trip{
				PartyType:     partyRef(entity.PartyTypeFamily),
				AdultsCount:   intRef(2),
				ChildrenCount: intRef(2),
				DurationDays:  intRef(4),
				BudgetLevel:   budgetRef(entity.BudgetCheap),
			},
			want: 4 * 4 * 1500 * 0.8,
		},
		{
			name: "solo luxury",
			trip: entity.Trip{
				PartyType:    partyRef(entity.PartyTypeSolo),
				DurationDays: intRef(3),
				BudgetLevel:  budgetRef(entity.BudgetLuxury),
			},
			want: 1 * 3 * 1500 * 1.5,
		},
		{
			name: "defaults when nothing is known",
			trip: entity.Trip{},
			// Two travellers, three days, moderate.
			want: 2 * 3 * 1500,
		},
		{
			name: "duration falls back to itinerary length",
			trip: entity.Trip{
				PartyType: partyRef(entity.PartyTypeSolo),
				Itinerary: &entity.Itinerary{
					Days: []entity.DayPlan{{Day: 1}, {Day: 2}, {Day: 3}, {Day: 4}},
				},
			},
			want: 1 * 4 * 1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTripPrice(&tt.trip)
			if got != tt.want {
				t.Errorf("EstimateTripPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}
