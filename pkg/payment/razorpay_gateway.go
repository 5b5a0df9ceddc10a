package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayGateway talks to the Razorpay Orders API. Amounts are converted
// to paise on the wire. Payment proof is an HMAC-SHA256 over
// "<order_id>|<payment_id>" keyed with the API secret.
type RazorpayGateway struct {
	keyId     string
	keySecret string
	client    *http.Client
}

func NewRazorpayGateway(keyId, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyId:     keyId,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *RazorpayGateway) Name() string {
	return "razorpay"
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error) {
	payload := razorpayOrderRequest{
		Amount:   int64(amount * 100), // Paise
		Currency: currency,
		Receipt:  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, razorpayBaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.keyId, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay order create returned status %d", resp.StatusCode)
	}

	var orderResp razorpayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("razorpay response decode failed: %w", err)
	}

	return &Order{
		OrderId:  orderResp.Id,
		Amount:   amount,
		Currency: orderResp.Currency,
		RawResponse: map[string]interface{}{
			"status": orderResp.Status,
		},
	}, nil
}

func (g *RazorpayGateway) VerifyPayment(ctx context.Context, req VerificationRequest) (bool, error) {
	if req.OrderId == "" || req.PaymentId == "" || req.Signature == "" {
		return false, fmt.Errorf("razorpay verification requires order id, payment id and signature")
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(req.OrderId + "|" + req.PaymentId))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(req.Signature)), nil
}
