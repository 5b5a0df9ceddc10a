package messaging

import "context"

// NoopSender is used when Twilio credentials are absent. Sends succeed
// silently so booking flows keep working in development.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) SendSMS(ctx context.Context, to, body string) error {
	return nil
}

func (s *NoopSender) SendWhatsApp(ctx context.Context, to, body string) error {
	return nil
}
