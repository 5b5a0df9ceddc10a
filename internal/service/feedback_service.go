package service

import (
	"context"
	"time"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/pkg/mailer"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	Submit(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error)

	// SendRequestEmails asks travellers whose trip ended yesterday for a
	// rating. Meant to run once a day from a scheduler.
	SendRequestEmails(ctx context.Context) error
}

type feedbackService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		uowFactory:   uowFactory,
		emailService: emailService,
		log:          log,
	}
}

func (s *feedbackService) Submit(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	feedback := &entity.TripFeedback{
		Id:        uuid.New(),
		TripId:    trip.Id,
		UserId:    trip.UserId,
		Email:     trip.Email,
		Rating:    req.Rating,
		Comments:  req.Comments,
		CreatedAt: time.Now(),
	}
	if err := uow.TripFeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, err
	}

	s.log.Info("feedback", "trip feedback recorded", map[string]interface{}{
		"trip_id": trip.Id.String(),
		"rating":  req.Rating,
	})

	return &dto.FeedbackResponse{
		Id:        feedback.Id,
		TripId:    feedback.TripId,
		Rating:    feedback.Rating,
		Comments:  feedback.Comments,
		CreatedAt: feedback.CreatedAt,
	}, nil
}

func (s *feedbackService) SendRequestEmails(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	yesterday := time.Now().AddDate(0, 0, -1)
	trips, err := uow.TripRepository().FindAll(ctx,
		specification.EndedOn{Date: yesterday},
		specification.FeedbackEmailPending{},
	)
	if err != nil {
		return err
	}

	for _, trip := range trips {
		destination := "your destination"
		if trip.ToCity != nil {
			destination = *trip.ToCity
		}
		if err := s.emailService.SendFeedbackRequest(trip.Email, destination); err != nil {
			// Leave the flag unset so tomorrow's run retries this trip.
			s.log.Warn("feedback", "failed to send feedback request", map[string]interface{}{
				"trip_id": trip.Id.String(),
				"error":   err.Error(),
			})
			continue
		}

		trip.FeedbackEmailSent = true
		now := time.Now()
		trip.UpdatedAt = &now
		if err := uow.TripRepository().Update(ctx, trip); err != nil {
			s.log.Error("feedback", "failed to mark feedback email sent", map[string]interface{}{
				"trip_id": trip.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	s.log.Info("feedback", "feedback email batch finished", map[string]interface{}{
		"eligible": len(trips),
	})
	return nil
}
