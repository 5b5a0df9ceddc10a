package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string
type PaymentProvider string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"

	PaymentProviderMock     PaymentProvider = "mock"
	PaymentProviderRazorpay PaymentProvider = "razorpay"
	PaymentProviderMidtrans PaymentProvider = "midtrans"
)

type Payment struct {
	Id        uuid.UUID
	TripId    uuid.UUID
	UserId    uuid.UUID
	Provider  PaymentProvider
	OrderRef  string
	Amount    float64
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}
