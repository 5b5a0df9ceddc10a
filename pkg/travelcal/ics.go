package travelcal

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"travelorbit-be/internal/entity"
)

// BuildTripCalendar renders a confirmed trip as an iCalendar document with
// one all-day event per itinerary day. The output attaches to booking emails.
func BuildTripCalendar(trip *entity.Trip) ([]byte, error) {
	if trip.Itinerary == nil || len(trip.Itinerary.Days) == 0 {
		return nil, fmt.Errorf("trip %s has no itinerary to export", trip.Id)
	}

	start := tripStartDate(trip)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TravelOrbit//Trip Planner//EN")

	for i, day := range trip.Itinerary.Days {
		dayDate := start.AddDate(0, 0, i)

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d@travelorbit", trip.Id, day.Day))
		event.SetAllDayStartAt(dayDate)
		event.SetAllDayEndAt(dayDate.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s: Day %d", TripTitle(trip), day.Day))
		event.SetDescription(dayDescription(trip.Itinerary, day))
		if trip.ToCity != nil {
			event.SetLocation(*trip.ToCity)
		}
		event.SetDtStampTime(time.Now().UTC())
	}

	return []byte(cal.Serialize()), nil
}

func tripStartDate(trip *entity.Trip) time.Time {
	if trip.StartDate != nil {
		return *trip.StartDate
	}
	// No fixed dates, anchor a tentative plan two weeks out.
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 14)
}

// TripTitle picks the best display name available for a trip.
func TripTitle(trip *entity.Trip) string {
	if trip.Title != nil && *trip.Title != "" {
		return *trip.Title
	}
	if trip.Itinerary != nil && trip.Itinerary.Title != "" {
		return trip.Itinerary.Title
	}
	if trip.ToCity != nil && *trip.ToCity != "" {
		return "Trip to " + *trip.ToCity
	}
	return "Your Trip"
}

func dayDescription(itin *entity.Itinerary, day entity.DayPlan) string {
	desc := day.Title
	for _, act := range day.Activities {
		if desc != "" {
			desc += "\n"
		}
		if act.Time != "" {
			desc += act.Time + ": "
		}
		desc += act.Name
	}
	if itin.Hotel != nil && itin.Hotel.Name != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += "Stay: " + itin.Hotel.Name
	}
	return desc
}
