package payment

import "context"

// Order is a gateway-side payment order created for a trip checkout.
type Order struct {
	OrderId     string
	Amount      float64
	Currency    string
	PaymentURL  string
	RawResponse map[string]interface{}
}

// VerificationRequest carries the fields a client returns after completing
// a checkout flow. Signature is gateway specific (empty for the mock).
type VerificationRequest struct {
	OrderId   string
	PaymentId string
	Signature string
}

type IGateway interface {
	// CreateOrder registers a payable order with the gateway. Amount is in
	// major currency units (e.g. rupees), receipt ties it back to the trip.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error)
	// VerifyPayment checks the client-side completion proof.
	VerifyPayment(ctx context.Context, req VerificationRequest) (bool, error)
	Name() string
}
