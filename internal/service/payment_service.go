package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/events"
	pktNats "travelorbit-be/pkg/nats"
	"travelorbit-be/pkg/payment"
	"travelorbit-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// BookingTopic is the in-process queue topic for post-payment fan-out.
const BookingTopic = "booking.confirmed"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrTripNotPayable  = errors.New("trip is not ready for payment")
	ErrPaymentRejected = errors.New("payment verification failed")
	ErrAlreadyPaid     = errors.New("trip is already paid")
)

type IPaymentService interface {
	// Checkout creates a gateway order for a planned trip.
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// Verify settles a payment from the client-side completion proof
	// (mock and razorpay flows).
	Verify(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.BookingResponse, error)

	// HandleMidtransNotification settles from the midtrans server webhook.
	HandleMidtransNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        payment.IGateway
	eventPublisher *pktNats.Publisher
	pubSub         *gochannel.GoChannel
	log            logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, gateway payment.IGateway, eventPublisher *pktNats.Publisher, pubSub *gochannel.GoChannel, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		eventPublisher: eventPublisher,
		pubSub:         pubSub,
		log:            log,
	}
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: req.TripId}, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if trip.Status == entity.TripStatusPaid {
		return nil, ErrAlreadyPaid
	}
	// Only finalized plans are payable; drafts still belong to the planner.
	if trip.Status != entity.TripStatusPlanned {
		return nil, ErrTripNotPayable
	}

	amount := EstimateTripPrice(trip)
	if trip.TotalPrice != nil && *trip.TotalPrice > 0 {
		amount = *trip.TotalPrice
	}

	order, err := s.gateway.CreateOrder(ctx, amount, trip.Currency, trip.Id.String())
	if err != nil {
		return nil, fmt.Errorf("gateway order failed: %w", err)
	}

	pay := &entity.Payment{
		Id:        uuid.New(),
		TripId:    trip.Id,
		UserId:    userId,
		Provider:  entity.PaymentProvider(s.gateway.Name()),
		OrderRef:  order.OrderId,
		Amount:    amount,
		Currency:  trip.Currency,
		Status:    entity.PaymentStatusCreated,
		CreatedAt: time.Now(),
	}
	if err := uow.PaymentRepository().Create(ctx, pay); err != nil {
		return nil, err
	}

	res := &dto.CheckoutResponse{
		PaymentId:  pay.Id,
		OrderRef:   order.OrderId,
		Amount:     amount,
		Currency:   trip.Currency,
		Provider:   s.gateway.Name(),
		PaymentURL: order.PaymentURL,
	}
	if token, ok := order.RawResponse["snap_token"].(string); ok {
		res.SnapToken = token
	}
	return res, nil
}

func (s *paymentService) Verify(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pay, err := uow.PaymentRepository().FindOne(ctx, specification.FilterBy{Field: "order_ref", Value: req.OrderRef})
	if err != nil {
		return nil, err
	}
	if pay == nil || pay.UserId != userId {
		return nil, ErrPaymentNotFound
	}
	if pay.Status == entity.PaymentStatusSucceeded {
		return s.bookingResponse(ctx, uow, pay.TripId)
	}

	ok, err := s.gateway.VerifyPayment(ctx, payment.VerificationRequest{
		OrderId:   req.OrderRef,
		PaymentId: req.PaymentId,
		Signature: req.Signature,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		pay.Status = entity.PaymentStatusFailed
		now := time.Now()
		pay.UpdatedAt = &now
		if err := uow.PaymentRepository().Update(ctx, pay); err != nil {
			s.log.Error("payment", "failed to record rejected payment", map[string]interface{}{
				"order_ref": req.OrderRef,
				"error":     err.Error(),
			})
		}
		return nil, ErrPaymentRejected
	}

	return s.settle(ctx, uow, pay)
}

func (s *paymentService) HandleMidtransNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	gateway, ok := s.gateway.(*payment.MidtransGateway)
	if !ok {
		return errors.New("midtrans notifications require the midtrans gateway")
	}
	if !gateway.VerifySignature(req.OrderId, req.StatusCode+req.GrossAmount, req.SignatureKey) {
		return ErrPaymentRejected
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pay, err := uow.PaymentRepository().FindOne(ctx, specification.FilterBy{Field: "order_ref", Value: req.OrderId})
	if err != nil {
		return err
	}
	if pay == nil {
		return ErrPaymentNotFound
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if pay.Status == entity.PaymentStatusSucceeded {
			return nil
		}
		_, err := s.settle(ctx, uow, pay)
		return err
	case "deny", "cancel", "expire", "failure":
		pay.Status = entity.PaymentStatusFailed
		now := time.Now()
		pay.UpdatedAt = &now
		return uow.PaymentRepository().Update(ctx, pay)
	default:
		// Pending and other intermediate states: nothing to do yet.
		return nil
	}
}

// settle flips the payment and trip to their terminal paid state inside a
// transaction, then kicks off the booking fan-out.
func (s *paymentService) settle(ctx context.Context, uow unitofwork.UnitOfWork, pay *entity.Payment) (*dto.BookingResponse, error) {
	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: pay.TripId})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	bookingNumber, err := utils.GenerateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pay.Status = entity.PaymentStatusSucceeded
	pay.UpdatedAt = &now

	trip.Status = entity.TripStatusPaid
	trip.BookingNumber = &bookingNumber
	trip.TotalPrice = &pay.Amount
	trip.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PaymentRepository().Update(ctx, pay); err != nil {
		return nil, err
	}
	if err := uow.TripRepository().Update(ctx, trip); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("payment", "booking confirmed", map[string]interface{}{
		"trip_id":        trip.Id.String(),
		"booking_number": bookingNumber,
		"amount":         pay.Amount,
	})

	s.publishBooking(ctx, trip)

	return &dto.BookingResponse{
		TripId:        trip.Id,
		BookingNumber: bookingNumber,
		Status:        string(trip.Status),
		TotalPrice:    pay.Amount,
		Currency:      pay.Currency,
	}, nil
}

func (s *paymentService) publishBooking(ctx context.Context, trip *entity.Trip) {
	if s.pubSub != nil {
		payload, err := json.Marshal(dto.PublishBookingMessage{TripId: trip.Id})
		if err == nil {
			msg := message.NewMessage(watermill.NewUUID(), payload)
			if err := s.pubSub.Publish(BookingTopic, msg); err != nil {
				s.log.Error("payment", "failed to queue booking fan-out", map[string]interface{}{
					"trip_id": trip.Id.String(),
					"error":   err.Error(),
				})
			}
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewBookingConfirmed(trip.Id, trip.Email, derefOr(trip.BookingNumber, ""), derefOr(trip.Title, ""), derefFloat(trip.TotalPrice), trip.Currency)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("payment", "failed to publish booking event", map[string]interface{}{
				"trip_id": trip.Id.String(),
				"error":   err.Error(),
			})
		}
	}
}

func (s *paymentService) bookingResponse(ctx context.Context, uow unitofwork.UnitOfWork, tripId uuid.UUID) (*dto.BookingResponse, error) {
	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: tripId})
	if err != nil {
		return nil, err
	}
	if trip == nil || trip.BookingNumber == nil {
		return nil, ErrTripNotFound
	}
	return &dto.BookingResponse{
		TripId:        trip.Id,
		BookingNumber: *trip.BookingNumber,
		Status:        string(trip.Status),
		TotalPrice:    derefFloat(trip.TotalPrice),
		Currency:      trip.Currency,
	}, nil
}

func derefFloat(f *float64) float64 {
	if f != nil {
		return *f
	}
	return 0
}
