package travelcal

import (
	"strings"
	"testing"
	"time"

	"travelorbit-be/internal/entity"

	"github.com/google/uuid"
)

func sp(s string) *string { return &s }

func sampleTrip() *entity.Trip {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return &entity.Trip{
		Id:        uuid.New(),
		Title:     sp("Goa Getaway"),
		ToCity:    sp("Goa"),
		StartDate: &start,
		Itinerary: &entity.Itinerary{
			Title: "Goa Getaway",
			Days: []entity.DayPlan{
				{Day: 1, Title: "Arrival and Baga beach", Activities: []entity.Activity{{Name: "Baga Beach", Time: "16:00"}}},
				{Day: 2, Title: "Old Goa churches", Activities: []entity.Activity{{Name: "Basilica of Bom Jesus", Time: "10:00"}}},
			},
		},
	}
}

func TestBuildTripCalendar(t *testing.T) {
	data, err := BuildTripCalendar(sampleTrip())
	if err != nil {
		t.Fatalf("BuildTripCalendar() error: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatal("output is not a VCALENDAR document")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("want 2 events, got %d", got)
	}
	if !strings.Contains(out, "Goa Getaway: Day 1") {
		t.Error("missing day 1 summary")
	}
	if !strings.Contains(out, "LOCATION:Goa") {
		t.Error("missing location")
	}
	if !strings.Contains(out, "-//TravelOrbit//Trip Planner//EN") {
		t.Error("missing product id")
	}
}

func TestBuildTripCalendarNoItinerary(t *testing.T) {
	if _, err := BuildTripCalendar(&entity.Trip{Id: uuid.New()}); err == nil {
		t.Fatal("expected error for a trip without an itinerary")
	}
}

func TestTripTitleFallbacks(t *testing.T) {
	if got := TripTitle(&entity.Trip{Title: sp("Named")}); got != "Named" {
		t.Errorf("got %q", got)
	}
	if got := TripTitle(&entity.Trip{Itinerary: &entity.Itinerary{Title: "From Plan"}}); got != "From Plan" {
		t.Errorf("got %q", got)
	}
	if got := TripTitle(&entity.Trip{ToCity: sp("Bali")}); got != "Trip to Bali" {
		t.Errorf("got %q", got)
	}
	if got := TripTitle(&entity.Trip{}); got != "Your Trip" {
		t.Errorf("got %q", got)
	}
}
