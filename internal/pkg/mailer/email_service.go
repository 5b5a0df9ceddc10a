package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type IEmailService interface {
	SendOTP(toEmail, otp string) error
	SendBookingConfirmation(toEmail, travellerName, tripTitle, bookingNumber string, totalPrice float64, currency string, attachments []Attachment) error
	SendFeedbackRequest(toEmail, destination string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendOTP(toEmail, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your TravelOrbit Login Code")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to TravelOrbit!</h2>
			<p>Your one-time login code is:</p>
			<h1 style="color: #FF6B35; letter-spacing: 5px;">%s</h1>
			<p>This code will expire in 10 minutes.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, otp)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send OTP to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] OTP sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendBookingConfirmation(toEmail, travellerName, tripTitle, bookingNumber string, totalPrice float64, currency string, attachments []Attachment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booking Confirmed — %s (%s)", tripTitle, bookingNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your trip is booked, %s! 🎉</h2>
			<p><strong>%s</strong></p>
			<p>Booking reference: <strong>%s</strong></p>
			<p>Amount paid: <strong>%s %.2f</strong></p>
			<p>Your itinerary ticket and calendar invite are attached.</p>
			<p>Have a wonderful trip!</p>
		</div>
	`, travellerName, tripTitle, bookingNumber, currency, totalPrice)

	m.SetBody("text/html", body)

	for _, att := range attachments {
		content := att.Content
		m.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send booking confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Booking confirmation sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendFeedbackRequest(toEmail, destination string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Welcome back! How was your trip to %s?", destination))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome back!</h2>
			<p>We hope your trip to <strong>%s</strong> was everything you wished for.</p>
			<p>Your feedback helps us plan better trips. It only takes a minute:</p>
			<p>Open your trip in TravelOrbit and tap <strong>Rate this trip</strong>.</p>
			<p>Thank you for travelling with us!</p>
		</div>
	`, destination)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send feedback request to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Feedback request sent to %s\n", toEmail)
	return nil
}
