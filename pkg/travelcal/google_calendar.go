package travelcal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"travelorbit-be/internal/entity"
)

const calendarEventsURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// GoogleCalendarClient inserts trip events into the user's primary calendar
// using an OAuth token obtained during Google sign-in.
type GoogleCalendarClient struct {
	conf *oauth2.Config
}

func NewGoogleCalendarClient(conf *oauth2.Config) *GoogleCalendarClient {
	return &GoogleCalendarClient{conf: conf}
}

type calendarEventDate struct {
	Date string `json:"date"`
}

type calendarEventRequest struct {
	Summary     string            `json:"summary"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       calendarEventDate `json:"start"`
	End         calendarEventDate `json:"end"`
}

type calendarEventResponse struct {
	Id string `json:"id"`
}

// InsertTripEvent creates a single all-day event spanning the whole trip
// and returns the created event id.
func (c *GoogleCalendarClient) InsertTripEvent(ctx context.Context, token *oauth2.Token, trip *entity.Trip) (string, error) {
	if trip.StartDate == nil {
		return "", fmt.Errorf("trip %s has no start date", trip.Id)
	}

	end := *trip.StartDate
	if trip.EndDate != nil {
		end = *trip.EndDate
	} else if trip.DurationDays != nil {
		end = trip.StartDate.AddDate(0, 0, *trip.DurationDays-1)
	}

	payload := calendarEventRequest{
		Summary: TripTitle(trip),
		Start:   calendarEventDate{Date: trip.StartDate.Format("2006-01-02")},
		// Calendar all-day end dates are exclusive.
		End: calendarEventDate{Date: end.AddDate(0, 0, 1).Format("2006-01-02")},
	}
	if trip.ToCity != nil {
		payload.Location = *trip.ToCity
	}
	if trip.AiSummaryText != nil {
		payload.Description = *trip.AiSummaryText
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	client := c.conf.Client(ctx, token)
	client.Timeout = 20 * time.Second

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, calendarEventsURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar insert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar insert returned status %d", resp.StatusCode)
	}

	var eventResp calendarEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&eventResp); err != nil {
		return "", err
	}
	return eventResp.Id, nil
}
