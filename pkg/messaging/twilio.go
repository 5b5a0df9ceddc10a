package messaging

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// ISender delivers short notifications to a phone number.
type ISender interface {
	SendSMS(ctx context.Context, to, body string) error
	SendWhatsApp(ctx context.Context, to, body string) error
}

// TwilioSender posts to the Twilio Messages API with basic auth. WhatsApp
// messages reuse the same endpoint with "whatsapp:" prefixed numbers.
type TwilioSender struct {
	accountSID     string
	authToken      string
	smsNumber      string
	whatsAppNumber string
	client         *http.Client
}

func NewTwilioSender(accountSID, authToken, smsNumber, whatsAppNumber string) *TwilioSender {
	return &TwilioSender{
		accountSID:     accountSID,
		authToken:      authToken,
		smsNumber:      smsNumber,
		whatsAppNumber: whatsAppNumber,
		client:         &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	return s.send(ctx, s.smsNumber, to, body)
}

func (s *TwilioSender) SendWhatsApp(ctx context.Context, to, body string) error {
	from := s.whatsAppNumber
	if !strings.HasPrefix(from, "whatsapp:") {
		from = "whatsapp:" + from
	}
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}
	return s.send(ctx, from, to, body)
}

func (s *TwilioSender) send(ctx context.Context, from, to, body string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioBaseURL, s.accountSID)

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}
