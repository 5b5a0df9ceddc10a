package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travelorbit-be/internal/config"
	"travelorbit-be/internal/constant"
	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/memory"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/events"
	"travelorbit-be/pkg/llm"
	pktNats "travelorbit-be/pkg/nats"
	"travelorbit-be/pkg/planner"
	"travelorbit-be/pkg/store"

	"github.com/google/uuid"
)

type IPlannerService interface {
	// HandleMessage runs one conversational turn for an authenticated user.
	HandleMessage(ctx context.Context, userId uuid.UUID, email, message string) (*dto.ChatResponse, error)

	// HandleWebhookMessage is the channel-integration entry point. The
	// sender email is the session key; unknown senders get a guest account.
	HandleWebhookMessage(ctx context.Context, req *dto.WebhookChatRequest) (*dto.WebhookChatResponse, error)

	GetHistory(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.ChatHistoryResponse, error)
}

type plannerService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	eventPublisher *pktNats.Publisher
	sessions       *memory.SessionRepository
	log            logger.ILogger
	timeout        time.Duration
}

func NewPlannerService(uowFactory unitofwork.RepositoryFactory, llmProvider llm.LLMProvider, eventPublisher *pktNats.Publisher, sessions *memory.SessionRepository, log logger.ILogger, cfg *config.Config) IPlannerService {
	return &plannerService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		eventPublisher: eventPublisher,
		sessions:       sessions,
		log:            log,
		timeout:        time.Duration(cfg.Ai.PlannerTimeoutSec) * time.Second,
	}
}

func (s *plannerService) HandleMessage(ctx context.Context, userId uuid.UUID, email, message string) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The whole turn runs in one transaction so a concurrent turn for the
	// same session cannot overwrite this one's field merges.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	trip, err := s.resolveOpenSession(ctx, uow, userId, email, message)
	if err != nil {
		return nil, err
	}

	// Empty inbound greets without burning a turn or a model call.
	if trimmed(message) == "" {
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		return &dto.ChatResponse{
			TripId: trip.Id,
			Reply:  constant.PlannerWelcomeReply,
			Trip:   dto.NewTripResponse(trip),
		}, nil
	}

	reply, isFinal, err := s.runTurn(ctx, uow, trip, message)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		TripId:  trip.Id,
		Reply:   reply,
		IsFinal: isFinal,
		Trip:    dto.NewTripResponse(trip),
	}, nil
}

func (s *plannerService) HandleWebhookMessage(ctx context.Context, req *dto.WebhookChatRequest) (*dto.WebhookChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Id:         uuid.New(),
			RegisterId: fmt.Sprintf("TO-%s", uuid.New().String()[:8]),
			Email:      req.Email,
			FullName:   req.Email,
			CreatedAt:  time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info("planner", "created guest account for webhook sender", map[string]interface{}{
			"email":   req.Email,
			"channel": req.Channel,
		})
	}

	trip, err := s.resolveOpenSession(ctx, uow, user.Id, user.Email, req.Message)
	if err != nil {
		return nil, err
	}

	if trimmed(req.Message) == "" {
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		return &dto.WebhookChatResponse{TripId: trip.Id, Reply: constant.PlannerWelcomeReply}, nil
	}

	// Channel gateways retry on slow responses. If the exact same text
	// arrives again for the same open trip, replay the last reply instead
	// of burning a second model call.
	sess, found := s.sessions.Get(req.Email)
	if found && sess.TripID == trip.Id && sess.LastInbound == req.Message && sess.LastReply != "" {
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		return &dto.WebhookChatResponse{TripId: trip.Id, Reply: sess.LastReply}, nil
	}

	reply, _, err := s.runTurn(ctx, uow, trip, req.Message)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if sess == nil || sess.TripID != trip.Id {
		sess = &store.Session{ID: req.Email, TripID: trip.Id, Channel: store.ChannelWebhook}
	}
	sess.UserTurns++
	sess.LastInbound = req.Message
	sess.LastReply = reply
	s.sessions.Save(sess)

	return &dto.WebhookChatResponse{TripId: trip.Id, Reply: reply}, nil
}

func (s *plannerService) GetHistory(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	messages, err := uow.TripMessageRepository().FindAll(ctx,
		specification.ByTripID{TripID: tripId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ChatHistoryResponse{TripId: tripId}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.NewTripMessageResponse(m))
	}
	return res, nil
}

// resolveOpenSession finds the trip this message belongs to, applying the
// restart policy, and creates a fresh draft when nothing open remains.
func (s *plannerService) resolveOpenSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, email, message string) (*entity.Trip, error) {
	trip, err := uow.TripRepository().FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.OpenTrips{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if trip != nil {
		turns, err := uow.TripMessageRepository().Count(ctx, specification.ByTripID{TripID: trip.Id})
		if err != nil {
			return nil, err
		}
		if !planner.ShouldReset(trip, message, int(turns)) {
			return trip, nil
		}
		s.log.Info("planner", "restarting planning session", map[string]interface{}{
			"previous_trip": trip.Id.String(),
			"status":        string(trip.Status),
		})
		// A restarted draft is discarded, not kept around as a second
		// open session.
		if trip.IsOpen() {
			trip.Status = entity.TripStatusCancelled
			if err := uow.TripRepository().Update(ctx, trip); err != nil {
				return nil, err
			}
		}
	}

	trip = &entity.Trip{
		Id:        uuid.New(),
		UserId:    userId,
		Email:     email,
		Status:    entity.TripStatusDraft,
		Currency:  "INR",
		CreatedAt: time.Now(),
	}
	if err := uow.TripRepository().Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// runTurn persists the user message, consults the model and folds the
// structured payload back into the trip. The user turn is written before
// the model call so a provider outage never loses what the user said.
func (s *plannerService) runTurn(ctx context.Context, uow unitofwork.UnitOfWork, trip *entity.Trip, message string) (string, bool, error) {
	userTurn := &entity.TripMessage{
		Id:        uuid.New(),
		TripId:    trip.Id,
		Role:      constant.TripMessageRoleUser,
		Text:      message,
		CreatedAt: time.Now(),
	}
	if err := uow.TripMessageRepository().Create(ctx, userTurn); err != nil {
		return "", false, err
	}

	messages, err := uow.TripMessageRepository().FindAll(ctx,
		specification.ByTripID{TripID: trip.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return "", false, err
	}

	history := planner.BuildContext(trip, messages)

	llmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, llmErr := s.llmProvider.Chat(llmCtx, history, llm.WithTemperature(0.7))
	if llmErr != nil && ctx.Err() == nil {
		// One retry covers transient provider hiccups. Anything past that
		// gets the deterministic fallback.
		raw, llmErr = s.llmProvider.Chat(llmCtx, history, llm.WithTemperature(0.7))
	}
	if llmErr != nil {
		s.log.Error("planner", "model call failed, serving fallback", map[string]interface{}{
			"trip_id": trip.Id.String(),
			"error":   llmErr.Error(),
		})
		fallback := planner.FallbackReply(trip)
		if err := s.persistAssistantTurn(ctx, uow, trip.Id, fallback); err != nil {
			return "", false, err
		}
		return fallback, false, nil
	}

	human, payload := planner.SplitResponse(raw)

	isFinal := false
	if payload != nil {
		// Re-read under a row lock before merging. The copy loaded at the
		// start of the turn is stale by now (the model call takes seconds)
		// and writing it back whole would erase fields a concurrent turn
		// merged in the meantime.
		fresh, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: trip.Id}, specification.ForUpdate{})
		if err != nil {
			return "", false, err
		}
		if fresh != nil {
			*trip = *fresh
		}

		merged := planner.Merge(*trip, payload.UpdatedFields)
		*trip = merged

		// Finality only counts when a structured itinerary actually arrived.
		if payload.IsFinal && payload.Itinerary != nil {
			trip.Itinerary = payload.Itinerary
			s.finalizeTrip(trip, payload.Itinerary, human)
			isFinal = true
		}

		now := time.Now()
		trip.UpdatedAt = &now
		if err := uow.TripRepository().Update(ctx, trip); err != nil {
			return "", false, err
		}
	}

	if trimmed(human) == "" {
		human = constant.PlannerClarifyReply
	}

	if err := s.persistAssistantTurn(ctx, uow, trip.Id, human); err != nil {
		return "", false, err
	}

	if isFinal && s.eventPublisher != nil {
		evt := events.NewTripFinalized(trip.Id, trip.Email, derefOr(trip.Title, ""))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("planner", "failed to publish trip finalized event", map[string]interface{}{
				"trip_id": trip.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	return human, isFinal, nil
}

// finalizeTrip stamps the derived booking fields once the model delivers
// the final itinerary: display title, summary line, estimated total and
// the planned status that opens checkout.
func (s *plannerService) finalizeTrip(trip *entity.Trip, itinerary *entity.Itinerary, summary string) {
	title := itinerary.Title
	if title == "" && trip.ToCity != nil {
		title = "Trip to " + *trip.ToCity
	}
	if title == "" {
		// A planned trip always carries a display title, even when the
		// model forgot one and no destination was ever captured.
		title = "Your Trip"
	}
	trip.Title = &title

	if summary == "" {
		summary = planner.ContextSummary(trip)
	}
	if summary != "" {
		trip.AiSummaryText = &summary
	}

	if trip.DurationDays == nil {
		days := len(itinerary.Days)
		if days > 0 {
			trip.DurationDays = &days
		}
	}

	total := EstimateTripPrice(trip)
	trip.TotalPrice = &total
	trip.Status = entity.TripStatusPlanned
}

func (s *plannerService) persistAssistantTurn(ctx context.Context, uow unitofwork.UnitOfWork, tripId uuid.UUID, text string) error {
	return uow.TripMessageRepository().Create(ctx, &entity.TripMessage{
		Id:        uuid.New(),
		TripId:    tripId,
		Role:      constant.TripMessageRoleAssistant,
		Text:      text,
		CreatedAt: time.Now(),
	})
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
