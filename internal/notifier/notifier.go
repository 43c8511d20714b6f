package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/pkg/messaging"
)

// ChannelBookingCreated is the pub/sub channel the widget and admin
// collaborators listen on.
const ChannelBookingCreated = "booking.created"

// BookingCreatedEvent is the message published after a commit.
type BookingCreatedEvent struct {
	BookingID   string    `json:"booking_id"`
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier fans a booking-created notification out to the configured
// channels. Every channel is best-effort: failures are logged by the
// caller and never affect the committed booking.
type Notifier struct {
	email  *EmailSender
	broker messaging.Broker
	logger zerolog.Logger
}

// New builds a notifier; either channel may be nil when disabled.
func New(email *EmailSender, broker messaging.Broker, logger zerolog.Logger) *Notifier {
	return &Notifier{
		email:  email,
		broker: broker,
		logger: logger,
	}
}

// BookingCreated sends the customer confirmation email and publishes
// the event. Channels fail independently; the last error wins, which
// is enough for the caller's logging.
func (n *Notifier) BookingCreated(ctx context.Context, record *model.BookingRecord) error {
	var lastErr error

	if n.email != nil {
		if err := n.email.SendBookingConfirmation(record); err != nil {
			n.logger.Warn().
				Err(err).
				Str("booking_id", record.ID.String()).
				Msg("confirmation email failed")
			lastErr = err
		}
	}

	if n.broker != nil {
		event := BookingCreatedEvent{
			BookingID:   record.ID.String(),
			ServiceID:   record.ServiceID.String(),
			ServiceName: record.ServiceName,
			Date:        record.Date.String(),
			Time:        record.Time.String(),
			OccurredAt:  time.Now(),
		}
		if err := n.broker.Publish(ctx, ChannelBookingCreated, event); err != nil {
			n.logger.Warn().
				Err(err).
				Str("booking_id", record.ID.String()).
				Msg("booking created event publish failed")
			lastErr = err
		}
	}

	return lastErr
}
