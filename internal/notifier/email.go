package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/bookwell/booking-api/internal/config"
	"github.com/bookwell/booking-api/internal/model"
)

// EmailSender delivers booking confirmations over SMTP.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *EmailSender) SendBookingConfirmation(record *model.BookingRecord) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", record.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booking confirmed: %s", record.ServiceName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s on %s at %s is confirmed.\n\nBooking reference: %s\n",
		record.CustomerName,
		record.ServiceName,
		record.Date,
		record.Time,
		record.ID,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
