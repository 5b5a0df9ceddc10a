package service

import (
	"context"
	"errors"
	"time"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/pdfgen"
	"travelorbit-be/pkg/travelcal"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrTripNotBooked = errors.New("trip is not booked yet")
	ErrTripNotOpen   = errors.New("trip can no longer be changed")
)

// Base day rate and budget multipliers for the estimate shown before
// checkout. Prices are in INR.
const perPersonPerDay = 1500.0

func budgetMultiplier(level *entity.BudgetLevel) float64 {
	if level == nil {
		return 1.0
	}
	switch *level {
	case entity.BudgetCheap:
		return 0.8
	case entity.BudgetLuxury:
		return 1.5
	default:
		return 1.0
	}
}

// EstimateTripPrice computes people * days * rate * budget multiplier.
// Missing duration falls back to the itinerary length, then to 3 days.
func EstimateTripPrice(trip *entity.Trip) float64 {
	days := 3
	if trip.DurationDays != nil && *trip.DurationDays > 0 {
		days = *trip.DurationDays
	} else if trip.Itinerary != nil && len(trip.Itinerary.Days) > 0 {
		days = len(trip.Itinerary.Days)
	}
	return float64(trip.PeopleCount()) * float64(days) * perPersonPerDay * budgetMultiplier(trip.BudgetLevel)
}

type ITripService interface {
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.TripListResponse, error)
	Get(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.TripResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) error
	Pricing(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.PricingResponse, error)
	BookingPDF(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) ([]byte, string, error)
	CalendarExport(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) ([]byte, error)
	AddToGoogleCalendar(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, accessToken string) (string, error)
	UpdateContact(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, req *dto.UpdateTripContactRequest) (*dto.TripResponse, error)
}

type tripService struct {
	uowFactory unitofwork.RepositoryFactory
	calendar   *travelcal.GoogleCalendarClient
}

func NewTripService(uowFactory unitofwork.RepositoryFactory, calendar *travelcal.GoogleCalendarClient) ITripService {
	return &tripService{
		uowFactory: uowFactory,
		calendar:   calendar,
	}
}

func (s *tripService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.TripListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	total, err := uow.TripRepository().Count(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	trips, err := uow.TripRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.TripListResponse{Total: total, Trips: []dto.TripResponse{}}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}
	return res, nil
}

func (s *tripService) Get(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.TripResponse, error) {
	trip, err := s.findOwned(ctx, userId, tripId)
	if err != nil {
		return nil, err
	}
	res := dto.NewTripResponse(trip)
	return &res, nil
}

// Cancel closes a trip. Paid trips keep their booking record and flip to
// cancelled; drafts and planned trips just stop being resumable.
func (s *tripService) Cancel(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return err
	}
	if trip == nil {
		return ErrTripNotFound
	}
	if trip.Status == entity.TripStatusCancelled {
		return nil
	}

	trip.Status = entity.TripStatusCancelled
	now := time.Now()
	trip.UpdatedAt = &now
	return uow.TripRepository().Update(ctx, trip)
}

// UpdateContact fixes traveller names and the contact phone. These stay
// editable after payment; the itinerary itself does not.
func (s *tripService) UpdateContact(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, req *dto.UpdateTripContactRequest) (*dto.TripResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if trip.Status == entity.TripStatusCancelled {
		return nil, ErrTripNotOpen
	}

	if req.ContactPhone != "" {
		phone := req.ContactPhone
		trip.ContactPhone = &phone
	}
	if len(req.Passengers) > 0 {
		trip.Passengers = req.Passengers
	}

	now := time.Now()
	trip.UpdatedAt = &now
	if err := uow.TripRepository().Update(ctx, trip); err != nil {
		return nil, err
	}

	res := dto.NewTripResponse(trip)
	return &res, nil
}

func (s *tripService) Pricing(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.PricingResponse, error) {
	trip, err := s.findOwned(ctx, userId, tripId)
	if err != nil {
		return nil, err
	}

	days := 3
	if trip.DurationDays != nil && *trip.DurationDays > 0 {
		days = *trip.DurationDays
	} else if trip.Itinerary != nil && len(trip.Itinerary.Days) > 0 {
		days = len(trip.Itinerary.Days)
	}

	return &dto.PricingResponse{
		TripId:     trip.Id,
		People:     trip.PeopleCount(),
		Days:       days,
		PerDayRate: perPersonPerDay,
		Multiplier: budgetMultiplier(trip.BudgetLevel),
		Total:      EstimateTripPrice(trip),
		Currency:   trip.Currency,
	}, nil
}

// BookingPDF renders the confirmation document for a paid trip. Returns
// the bytes plus a suggested filename.
func (s *tripService) BookingPDF(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) ([]byte, string, error) {
	trip, err := s.findOwned(ctx, userId, tripId)
	if err != nil {
		return nil, "", err
	}
	if trip.Status != entity.TripStatusPaid || trip.BookingNumber == nil {
		return nil, "", ErrTripNotBooked
	}

	pdfBytes, err := pdfgen.BuildBookingPDF(trip)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, "booking-" + *trip.BookingNumber + ".pdf", nil
}

func (s *tripService) findOwned(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*entity.Trip, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// CalendarExport renders the itinerary as an iCalendar file the client
// can import anywhere.
func (s *tripService) CalendarExport(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) ([]byte, error) {
	trip, err := s.findOwned(ctx, userId, tripId)
	if err != nil {
		return nil, err
	}
	return travelcal.BuildTripCalendar(trip)
}

// AddToGoogleCalendar pushes the trip into the caller's primary Google
// calendar using the OAuth access token from the client session, and
// remembers the created event id.
func (s *tripService) AddToGoogleCalendar(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, accessToken string) (string, error) {
	if s.calendar == nil {
		return "", errors.New("google calendar integration is not configured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return "", err
	}
	if trip == nil {
		return "", ErrTripNotFound
	}
	if trip.GoogleCalendarEventId != nil {
		return *trip.GoogleCalendarEventId, nil
	}

	eventId, err := s.calendar.InsertTripEvent(ctx, &oauth2.Token{AccessToken: accessToken}, trip)
	if err != nil {
		return "", err
	}

	trip.GoogleCalendarEventId = &eventId
	now := time.Now()
	trip.UpdatedAt = &now
	if err := uow.TripRepository().Update(ctx, trip); err != nil {
		return "", err
	}
	return eventId, nil
}
