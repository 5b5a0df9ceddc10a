package service

import (
	"context"
	"fmt"
	"time"

	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/internal/websocket"
	"travelorbit-be/pkg/events"
	pktNats "travelorbit-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification websocket.Notification)
	Broadcast(notification websocket.Notification)
}

// NotificationService bridges the NATS event bus to connected websocket
// clients. Booking and conversion events go to the affected user; deal
// batches are broadcast to everyone online.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("travel.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to travel.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	switch event.EventType() {
	case events.TypeBookingConfirmed:
		bookingNumber, _ := payload["booking_number"].(string)
		title, _ := payload["title"].(string)
		if title == "" {
			title = "your trip"
		}
		return s.sendToEmail(ctx, payload, events.TypeBookingConfirmed,
			"Booking Confirmed",
			fmt.Sprintf("Payment received! %s is booked under %s.", title, bookingNumber))

	case events.TypeTripFinalized:
		title, _ := payload["title"].(string)
		if title == "" {
			title = "Your itinerary"
		}
		return s.sendToEmail(ctx, payload, events.TypeTripFinalized,
			"Itinerary Ready",
			fmt.Sprintf("%s is ready. Review it and book when you like.", title))

	case events.TypeGroupConverted:
		code, _ := payload["group_code"].(string)
		s.delivery.Broadcast(s.build(events.TypeGroupConverted,
			"Group Trip Decided",
			fmt.Sprintf("Group %s has voted and the trip is ready to book!", code),
			payload))
		return nil

	case events.TypeGroupVoteRecorded:
		count, _ := payload["vote_count"].(float64)
		expected, _ := payload["expected"].(float64)
		code, _ := payload["code"].(string)
		s.delivery.Broadcast(s.build(events.TypeGroupVoteRecorded,
			"Vote Recorded",
			fmt.Sprintf("Group %s: %d of %d votes in.", code, int(count), int(expected)),
			payload))
		return nil

	case events.TypeDealsGenerated:
		count, _ := payload["count"].(float64)
		s.delivery.Broadcast(s.build(events.TypeDealsGenerated,
			"Fresh Deals",
			fmt.Sprintf("%d new travel deals just dropped. Grab them before midnight!", int(count)),
			payload))
		return nil
	}

	// Unmapped event types are fine; consumers advance past them.
	return nil
}

func (s *NotificationService) sendToEmail(ctx context.Context, payload map[string]interface{}, typeCode, title, message string) error {
	email, _ := payload["email"].(string)
	if email == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	s.delivery.Send(user.Id, s.build(typeCode, title, message, payload))
	return nil
}

func (s *NotificationService) build(typeCode, title, message string, metadata map[string]interface{}) websocket.Notification {
	return websocket.Notification{
		ID:        uuid.New(),
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}
