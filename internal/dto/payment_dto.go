package dto

import (
	"github.com/google/uuid"
)

// --- Payment DTOs ---

type CheckoutRequest struct {
	TripId uuid.UUID `json:"trip_id" validate:"required"`
}

type CheckoutResponse struct {
	PaymentId  uuid.UUID `json:"payment_id"`
	OrderRef   string    `json:"order_ref"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Provider   string    `json:"provider"`
	PaymentURL string    `json:"payment_url,omitempty"`
	SnapToken  string    `json:"snap_token,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderRef  string `json:"order_ref" validate:"required"`
	PaymentId string `json:"payment_id"`
	Signature string `json:"signature"`
}

type BookingResponse struct {
	TripId        uuid.UUID `json:"trip_id"`
	BookingNumber string    `json:"booking_number"`
	Status        string    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	Currency      string    `json:"currency"`
}

// MidtransWebhookRequest mirrors the fields Midtrans posts to the
// notification endpoint.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// PublishBookingMessage rides the in-process queue from payment settlement
// to the booking fan-out worker.
type PublishBookingMessage struct {
	TripId uuid.UUID `json:"trip_id"`
}
