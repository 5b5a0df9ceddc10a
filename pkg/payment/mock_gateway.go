package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MockGateway settles every order instantly. It backs development and tests
// so the booking flow can run without gateway credentials.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Name() string {
	return "mock"
}

func (g *MockGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error) {
	orderId := fmt.Sprintf("order_mock_%s", uuid.New().String()[:12])
	return &Order{
		OrderId:  orderId,
		Amount:   amount,
		Currency: currency,
		RawResponse: map[string]interface{}{
			"receipt": receipt,
			"status":  "created",
		},
	}, nil
}

// VerifyPayment accepts anything addressed to a mock order.
func (g *MockGateway) VerifyPayment(ctx context.Context, req VerificationRequest) (bool, error) {
	if req.OrderId == "" {
		return false, fmt.Errorf("mock gateway: missing order id")
	}
	return true, nil
}
