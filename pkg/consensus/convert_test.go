package consensus

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"travelorbit-be/internal/entity"

	"github.com/google/uuid"
)

func budgetPtr(b entity.BudgetLevel) *entity.BudgetLevel { return &b }
func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testGroup() *entity.TravelGroup {
	return &entity.TravelGroup{
		Id:           uuid.New(),
		Code:         "AB12CD",
		LeaderUserId: uuid.New(),
		LeaderEmail:  "leader@example.com",
		Name:         "College Gang",
	}
}

func TestConvertNoVotes(t *testing.T) {
	_, err := Convert(testGroup(), nil)
	if !errors.Is(err, ErrNoVotes) {
		t.Fatalf("err = %v, want ErrNoVotes", err)
	}
}

func TestConvertPluralityAndTieBreak(t *testing.T) {
	votes := []*entity.GroupVote{
		{VoterEmail: "a@x.com", Destination: "Manali"},
		{VoterEmail: "b@x.com", Destination: "Goa"},
		{VoterEmail: "c@x.com", Destination: "Manali"},
		{VoterEmail: "d@x.com", Destination: "Goa"},
	}

	trip, err := Convert(testGroup(), votes)
	if err != nil {
		t.Fatal(err)
	}
	// 2-2 tie: Manali was submitted first, so Manali wins.
	if *trip.ToCity != "Manali" {
		t.Errorf("destination = %q, want Manali (first-seen tie-break)", *trip.ToCity)
	}
	if *trip.Title != "Group Trip to Manali" {
		t.Errorf("title = %q", *trip.Title)
	}
}

func TestConvertTwoVoterScenario(t *testing.T) {
	group := testGroup()
	votes := []*entity.GroupVote{
		{VoterEmail: "v1@example.com", Destination: "Paris", BudgetLevel: budgetPtr(entity.BudgetLuxury)},
		{VoterEmail: "v2@example.com", Destination: "Paris", BudgetLevel: budgetPtr(entity.BudgetCheap)},
	}

	trip, err := Convert(group, votes)
	if err != nil {
		t.Fatal(err)
	}
	if *trip.ToCity != "Paris" {
		t.Errorf("destination = %q, want Paris", *trip.ToCity)
	}
	// Budget tie: first submission ("luxury") wins.
	if trip.BudgetLevel == nil || *trip.BudgetLevel != entity.BudgetLuxury {
		t.Errorf("budget = %v, want luxury", trip.BudgetLevel)
	}
	if *trip.AdultsCount != 2 {
		t.Errorf("party size = %d, want 2", *trip.AdultsCount)
	}
	if trip.Status != entity.TripStatusPlanned {
		t.Errorf("status = %v, want planned", trip.Status)
	}
	if trip.SourceGroupId == nil || *trip.SourceGroupId != group.Id {
		t.Error("trip not linked back to group")
	}
}

func TestConvertDateRangePluralityIsPairwise(t *testing.T) {
	// (Oct 1, Oct 5) appears twice; Oct 3 as a start appears twice too but
	// paired with different ends, so the exact pair must win.
	votes := []*entity.GroupVote{
		{VoterEmail: "a@x.com", Destination: "Goa", StartDate: datePtr(2026, 10, 3), EndDate: datePtr(2026, 10, 7)},
		{VoterEmail: "b@x.com", Destination: "Goa", StartDate: datePtr(2026, 10, 1), EndDate: datePtr(2026, 10, 5)},
		{VoterEmail: "c@x.com", Destination: "Goa", StartDate: datePtr(2026, 10, 3), EndDate: datePtr(2026, 10, 9)},
		{VoterEmail: "d@x.com", Destination: "Goa", StartDate: datePtr(2026, 10, 1), EndDate: datePtr(2026, 10, 5)},
	}

	trip, err := Convert(testGroup(), votes)
	if err != nil {
		t.Fatal(err)
	}
	if !trip.StartDate.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", trip.StartDate)
	}
	if !trip.EndDate.Equal(time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", trip.EndDate)
	}
	if *trip.DurationDays != 4 {
		t.Errorf("duration = %d, want 4", *trip.DurationDays)
	}
}

func TestConvertNoRepeatingPairUsesFirst(t *testing.T) {
	votes := []*entity.GroupVote{
		{VoterEmail: "a@x.com", Destination: "Goa", StartDate: datePtr(2026, 11, 10), EndDate: datePtr(2026, 11, 12)},
		{VoterEmail: "b@x.com", Destination: "Goa", StartDate: datePtr(2026, 11, 20), EndDate: datePtr(2026, 11, 25)},
	}

	trip, err := Convert(testGroup(), votes)
	if err != nil {
		t.Fatal(err)
	}
	if !trip.StartDate.Equal(time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want first submitted pair", trip.StartDate)
	}
	if *trip.DurationDays != 2 {
		t.Errorf("duration = %d, want 2", *trip.DurationDays)
	}
}

func TestConvertDurationFlooredAtOneDay(t *testing.T) {
	day := datePtr(2026, 10, 1)
	votes := []*entity.GroupVote{
		{VoterEmail: "a@x.com", Destination: "Goa", StartDate: day, EndDate: day},
	}
	trip, err := Convert(testGroup(), votes)
	if err != nil {
		t.Fatal(err)
	}
	if *trip.DurationDays != 1 {
		t.Errorf("duration = %d, want floor of 1", *trip.DurationDays)
	}
}

func TestConvertInterestsTopFiveByFrequency(t *testing.T) {
	votes := []*entity.GroupVote{
		{VoterEmail: "a@x.com", Destination: "Goa", Activities: []string{"food", "beach", "trek"}},
		{VoterEmail: "b@x.com", Destination: "Goa", Activities: []string{"beach", "nightlife", "spa"}},
		{VoterEmail: "c@x.com", Destination: "Goa", Activities: []string{"beach", "food", "museum", "surfing"}},
	}

	trip, err := Convert(testGroup(), votes)
	if err != nil {
		t.Fatal(err)
	}
	// beach x3, food x2, then singles in first-seen order: trek, nightlife, spa.
	want := []string{"beach", "food", "trek", "nightlife", "spa"}
	if !reflect.DeepEqual(trip.Interests, want) {
		t.Errorf("interests = %v, want %v", trip.Interests, want)
	}
}

func TestConvertVotersBecomePassengers(t *testing.T) {
	name := "Asha"
	phone := "+919876543210"
	votes := []*entity.GroupVote{
		{VoterEmail: "asha@x.com", VoterName: &name, Destination: "Goa"},
		{VoterEmail: "ravi.kumar@x.com", Destination: "Goa", Phone: &phone},
		{VoterEmail: "asha@x.com", Destination: "Goa"}, // duplicate voter
	}

	trip, err := Convert(testGroup(), votes)
	if err != nil {
		t.Fatal(err)
	}
	if len(trip.Passengers) != 2 {
		t.Fatalf("passengers = %+v, want 2 distinct voters", trip.Passengers)
	}
	if trip.Passengers[0].Name != "Asha" || trip.Passengers[0].Role != "adult" {
		t.Errorf("first passenger = %+v", trip.Passengers[0])
	}
	// Email local part stands in when no name was given.
	if trip.Passengers[1].Name != "ravi.kumar" {
		t.Errorf("second passenger = %+v", trip.Passengers[1])
	}
	if trip.ContactPhone == nil || *trip.ContactPhone != phone {
		t.Errorf("phone = %v, want first submitted", trip.ContactPhone)
	}
}
