package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures outbound mail instead of dialing SMTP.
type recordingMailer struct {
	feedbackSentTo []string
	failFor        map[string]bool
}

func (m *recordingMailer) SendOTP(toEmail, otp string) error { return nil }

func (m *recordingMailer) SendBookingConfirmation(toEmail, travellerName, tripTitle, bookingNumber string, totalPrice float64, currency string, attachments []mailer.Attachment) error {
	return nil
}

func (m *recordingMailer) SendFeedbackRequest(toEmail, destination string) error {
	if m.failFor[toEmail] {
		return errors.New("smtp unavailable")
	}
	m.feedbackSentTo = append(m.feedbackSentTo, toEmail)
	return nil
}

var _ mailer.IEmailService = (*recordingMailer)(nil)

func strRef(s string) *string { return &s }

func seedEndedTrip(store *memStore, email string, endedDaysAgo int, status entity.TripStatus, sent bool) entity.Trip {
	end := time.Now().AddDate(0, 0, -endedDaysAgo)
	trip := entity.Trip{
		Id:                uuid.New(),
		UserId:            uuid.New(),
		Email:             email,
		ToCity:            strRef("Goa"),
		EndDate:           &end,
		Status:            status,
		Currency:          "INR",
		FeedbackEmailSent: sent,
		CreatedAt:         time.Now(),
	}
	store.setTrip(trip)
	return trip
}

func TestSubmitFeedbackStoresRating(t *testing.T) {
	store := newMemStore()
	mail := &recordingMailer{}
	svc := NewFeedbackService(&fakeFactory{store: store}, mail, nopLogger{})

	trip := seedEndedTrip(store, "ana@example.com", 1, entity.TripStatusPaid, true)

	res, err := svc.Submit(context.Background(), trip.UserId, trip.Id, &dto.SubmitFeedbackRequest{
		Rating:   5,
		Comments: strRef("Loved the beach days"),
	})
	require.NoError(t, err)
	assert.Equal(t, trip.Id, res.TripId)
	assert.Equal(t, 5, res.Rating)

	require.Len(t, store.feedback, 1)
	fb := store.feedback[0]
	assert.Equal(t, trip.Id, fb.TripId)
	assert.Equal(t, trip.UserId, fb.UserId)
	assert.Equal(t, "ana@example.com", fb.Email)
	assert.Equal(t, 5, fb.Rating)
	require.NotNil(t, fb.Comments)
	assert.Equal(t, "Loved the beach days", *fb.Comments)
}

func TestSubmitFeedbackRejectsForeignTrip(t *testing.T) {
	store := newMemStore()
	svc := NewFeedbackService(&fakeFactory{store: store}, &recordingMailer{}, nopLogger{})

	trip := seedEndedTrip(store, "ana@example.com", 1, entity.TripStatusPaid, true)

	_, err := svc.Submit(context.Background(), uuid.New(), trip.Id, &dto.SubmitFeedbackRequest{Rating: 4})
	require.ErrorIs(t, err, ErrTripNotFound)
	assert.Empty(t, store.feedback)
}

func TestSendRequestEmailsTargetsTripsEndedYesterday(t *testing.T) {
	store := newMemStore()
	mail := &recordingMailer{}
	svc := NewFeedbackService(&fakeFactory{store: store}, mail, nopLogger{})

	eligible := seedEndedTrip(store, "ana@example.com", 1, entity.TripStatusPaid, false)
	alreadyAsked := seedEndedTrip(store, "ben@example.com", 1, entity.TripStatusPaid, true)
	endedLastWeek := seedEndedTrip(store, "cara@example.com", 7, entity.TripStatusPaid, false)
	cancelled := seedEndedTrip(store, "dev@example.com", 1, entity.TripStatusCancelled, false)

	require.NoError(t, svc.SendRequestEmails(context.Background()))

	assert.Equal(t, []string{"ana@example.com"}, mail.feedbackSentTo)
	assert.True(t, store.tripByID(eligible.Id).FeedbackEmailSent)
	assert.True(t, store.tripByID(alreadyAsked.Id).FeedbackEmailSent)
	assert.False(t, store.tripByID(endedLastWeek.Id).FeedbackEmailSent)
	assert.False(t, store.tripByID(cancelled.Id).FeedbackEmailSent)
}

func TestSendRequestEmailsRetriesFailedSendsNextRun(t *testing.T) {
	store := newMemStore()
	mail := &recordingMailer{failFor: map[string]bool{"ana@example.com": true}}
	svc := NewFeedbackService(&fakeFactory{store: store}, mail, nopLogger{})

	flaky := seedEndedTrip(store, "ana@example.com", 1, entity.TripStatusPaid, false)
	fine := seedEndedTrip(store, "ben@example.com", 1, entity.TripStatusPlanned, false)

	require.NoError(t, svc.SendRequestEmails(context.Background()))

	assert.Equal(t, []string{"ben@example.com"}, mail.feedbackSentTo)
	assert.True(t, store.tripByID(fine.Id).FeedbackEmailSent)
	// The flag stays clear so the next daily run picks this trip up again.
	assert.False(t, store.tripByID(flaky.Id).FeedbackEmailSent)
}
