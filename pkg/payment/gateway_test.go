package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func razorpaySign(secret, orderId, paymentId string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayVerifyPayment(t *testing.T) {
	g := NewRazorpayGateway("key_id", "key_secret")

	ok, err := g.VerifyPayment(context.Background(), VerificationRequest{
		OrderId:   "order_123",
		PaymentId: "pay_456",
		Signature: razorpaySign("key_secret", "order_123", "pay_456"),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.VerifyPayment(context.Background(), VerificationRequest{
		OrderId:   "order_123",
		PaymentId: "pay_456",
		Signature: razorpaySign("wrong_secret", "order_123", "pay_456"),
	})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.VerifyPayment(context.Background(), VerificationRequest{OrderId: "order_123"})
	assert.Error(t, err)
}

func TestMidtransVerifySignature(t *testing.T) {
	g := NewMidtransGateway("server_key", false)

	h := sha512.New()
	h.Write([]byte("order_123" + "200" + "12000.00" + "server_key"))
	valid := hex.EncodeToString(h.Sum(nil))

	assert.True(t, g.VerifySignature("order_123", "200"+"12000.00", valid))
	assert.False(t, g.VerifySignature("order_123", "200"+"12000.00", "tampered"))
	assert.False(t, g.VerifySignature("order_999", "200"+"12000.00", valid))
}

func TestMockGateway(t *testing.T) {
	g := NewMockGateway()

	order, err := g.CreateOrder(context.Background(), 9999, "INR", "trip-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderId, "order_mock_"))
	assert.Equal(t, 9999.0, order.Amount)

	ok, err := g.VerifyPayment(context.Background(), VerificationRequest{OrderId: order.OrderId})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = g.VerifyPayment(context.Background(), VerificationRequest{})
	assert.Error(t, err)
}

func TestNewGatewaySelection(t *testing.T) {
	g, err := NewGateway("mock", "", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "mock", g.Name())

	g, err = NewGateway("razorpay", "id", "secret", "", false)
	require.NoError(t, err)
	assert.Equal(t, "razorpay", g.Name())

	g, err = NewGateway("midtrans", "", "", "server_key", false)
	require.NoError(t, err)
	assert.Equal(t, "midtrans", g.Name())

	_, err = NewGateway("unknown", "", "", "", false)
	assert.Error(t, err)
}
