package service

import (
	"context"
	"encoding/json"
	"log"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/mailer"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/messaging"
	"travelorbit-be/pkg/pdfgen"
	"travelorbit-be/pkg/travelcal"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the booking queue: for each confirmed booking it
// renders the PDF and calendar attachments, emails the confirmation and
// pings the traveller on WhatsApp. Everything here is best-effort; the
// booking itself is already settled.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	sender       messaging.ISender
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	sender messaging.ISender,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		sender:       sender,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishBookingMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal booking message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing booking fan-out for trip %s", payload.TripId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: payload.TripId})
	if err != nil || trip == nil {
		log.Printf("[ERROR] Failed to load trip %s: %v", payload.TripId, err)
		msg.Nack()
		return
	}
	if trip.Status != entity.TripStatusPaid || trip.BookingNumber == nil {
		log.Printf("[WARN] Trip %s is not in a paid state, skipping fan-out", payload.TripId)
		msg.Ack()
		return
	}

	var attachments []mailer.Attachment

	if pdfBytes, err := pdfgen.BuildBookingPDF(trip); err == nil {
		attachments = append(attachments, mailer.Attachment{
			Filename: "booking-" + *trip.BookingNumber + ".pdf",
			Content:  pdfBytes,
		})
	} else {
		log.Printf("[WARN] PDF generation failed for trip %s: %v", trip.Id, err)
	}

	if icsBytes, err := travelcal.BuildTripCalendar(trip); err == nil {
		attachments = append(attachments, mailer.Attachment{
			Filename: "itinerary.ics",
			Content:  icsBytes,
		})
	} else {
		log.Printf("[WARN] Calendar export failed for trip %s: %v", trip.Id, err)
	}

	travellerName := trip.Email
	if len(trip.Passengers) > 0 {
		travellerName = trip.Passengers[0].Name
	}

	if err := cs.emailService.SendBookingConfirmation(
		trip.Email,
		travellerName,
		travelcal.TripTitle(trip),
		*trip.BookingNumber,
		derefFloat(trip.TotalPrice),
		trip.Currency,
		attachments,
	); err != nil {
		log.Printf("[ERROR] Booking email failed for trip %s: %v", trip.Id, err)
		msg.Nack()
		return
	}

	if trip.ContactPhone != nil {
		body := "Your TravelOrbit booking " + *trip.BookingNumber + " is confirmed! Check your email for the full itinerary."
		if err := cs.sender.SendWhatsApp(ctx, *trip.ContactPhone, body); err != nil {
			log.Printf("[WARN] WhatsApp notification failed for trip %s: %v", trip.Id, err)
		}
	}

	msg.Ack()
}
