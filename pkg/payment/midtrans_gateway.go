package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransGateway creates Snap transactions. Webhook notifications carry a
// SHA512(order_id + status_code + gross_amount + server_key) signature.
type MidtransGateway struct {
	serverKey string
	client    snap.Client
}

func NewMidtransGateway(serverKey string, isProduction bool) *MidtransGateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(serverKey, env)
	return &MidtransGateway{
		serverKey: serverKey,
		client:    client,
	}
}

func (g *MidtransGateway) Name() string {
	return "midtrans"
}

func (g *MidtransGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  receipt,
			GrossAmt: int64(amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := g.client.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &Order{
		OrderId:    receipt,
		Amount:     amount,
		Currency:   currency,
		PaymentURL: snapResp.RedirectURL,
		RawResponse: map[string]interface{}{
			"snap_token": snapResp.Token,
		},
	}, nil
}

// VerifyPayment for Midtrans is webhook driven. The Signature field holds
// the notification signature_key, PaymentId holds "<status_code>:<gross_amount>".
func (g *MidtransGateway) VerifyPayment(ctx context.Context, req VerificationRequest) (bool, error) {
	if req.OrderId == "" || req.Signature == "" {
		return false, fmt.Errorf("midtrans verification requires order id and signature")
	}
	return g.VerifySignature(req.OrderId, req.PaymentId, req.Signature), nil
}

// VerifySignature checks a webhook signature_key. statusAndAmount is the
// concatenation of status_code and gross_amount as sent by Midtrans.
func (g *MidtransGateway) VerifySignature(orderId, statusAndAmount, signatureKey string) bool {
	h := sha512.New()
	h.Write([]byte(orderId + statusAndAmount + g.serverKey))
	expected := hex.EncodeToString(h.Sum(nil))
	return expected == signatureKey
}
