package payment

import "fmt"

// NewGateway selects a payment gateway by provider name.
func NewGateway(provider, razorpayKeyId, razorpayKeySecret, midtransServerKey string, midtransProduction bool) (IGateway, error) {
	switch provider {
	case "mock", "":
		return NewMockGateway(), nil
	case "razorpay":
		if razorpayKeyId == "" || razorpayKeySecret == "" {
			return nil, fmt.Errorf("razorpay gateway requires key id and secret")
		}
		return NewRazorpayGateway(razorpayKeyId, razorpayKeySecret), nil
	case "midtrans":
		if midtransServerKey == "" {
			return nil, fmt.Errorf("midtrans gateway requires a server key")
		}
		return NewMidtransGateway(midtransServerKey, midtransProduction), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", provider)
	}
}
