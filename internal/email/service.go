package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

// Service sends transactional mail for booking lifecycle events.
type Service interface {
	SendBookingCreated(ctx context.Context, to string, booking *model.Booking) error
	SendBookingStatusChanged(ctx context.Context, to string, booking *model.Booking) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingCreated(ctx context.Context, to string, booking *model.Booking) error {
	subject := "Booking request received"
	body := fmt.Sprintf(
		"Your booking for %s at %s is pending confirmation by the provider.",
		booking.BookingDate.Format(model.DateOnly),
		booking.BookingTime,
	)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendBookingStatusChanged(ctx context.Context, to string, booking *model.Booking) error {
	subject := fmt.Sprintf("Booking %s", booking.Status)
	body := fmt.Sprintf(
		"Your booking for %s at %s is now %s.",
		booking.BookingDate.Format(model.DateOnly),
		booking.BookingTime,
		booking.Status,
	)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService discards all mail. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendBookingCreated(context.Context, string, *model.Booking) error {
	return nil
}

func (NoopService) SendBookingStatusChanged(context.Context, string, *model.Booking) error {
	return nil
}
