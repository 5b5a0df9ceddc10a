package entity

import "testing"

func ip(n int) *int             { return &n }
func pp(p PartyType) *PartyType { return &p }

func TestPeopleCount(t *testing.T) {
	tests := []struct {
		name string
		trip Trip
		want int
	}{
		{"solo", Trip{PartyType: pp(PartyTypeSolo)}, 1},
		{"couple", Trip{PartyType: pp(PartyTypeCouple)}, 2},
		{"family with counts", Trip{PartyType: pp(PartyTypeFamily), AdultsCount: ip(2), ChildrenCount: ip(1), SeniorsCount: ip(1)}, 4},
		{"friends without counts defaults", Trip{PartyType: pp(PartyTypeFriends)}, 2},
		{"no party info defaults", Trip{}, 2},
		{"counts without party type", Trip{AdultsCount: ip(3)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trip.PeopleCount(); got != tt.want {
				t.Errorf("PeopleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsOpen(t *testing.T) {
	open := []TripStatus{TripStatusDraft, TripStatusPlanned}
	closed := []TripStatus{TripStatusPaid, TripStatusCancelled}

	for _, s := range open {
		if !(&Trip{Status: s}).IsOpen() {
			t.Errorf("status %s should be open", s)
		}
	}
	for _, s := range closed {
		if (&Trip{Status: s}).IsOpen() {
			t.Errorf("status %s should not be open", s)
		}
	}
}
