package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
	apperrors "github.com/bookwell/booking-api/pkg/errors"
	"github.com/bookwell/booking-api/pkg/metrics"
)

const notifyTimeout = 10 * time.Second

// Notifier is the post-commit hook for freshly created bookings.
// Implementations are best-effort collaborators; a failure never rolls
// the booking back.
type Notifier interface {
	BookingCreated(ctx context.Context, record *model.BookingRecord) error
}

// Service is the sole authority that commits reservations. It
// re-checks conflicts inside its own transaction, so stale Calculator
// reads can never cause a double booking.
type Service struct {
	repo     repository.BookingRepository
	notifier Notifier
	logger   zerolog.Logger
	metrics  *metrics.Metrics

	now func() time.Time
}

func NewService(repo repository.BookingRepository, notifier Notifier, logger zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// CreateBooking validates and persists one booking as a single atomic
// unit of work. Any failure aborts the whole transaction; conflicts
// are not retried here, the caller must refresh availability and let
// the end user choose again.
func (s *Service) CreateBooking(ctx context.Context, accountID uuid.UUID, req *model.CreateBookingRequest) (*model.BookingRecord, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid service id", err)
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}
	start, err := model.ParseClock(req.Time)
	if err != nil {
		return nil, apperrors.BadRequest("invalid time", err)
	}

	var record *model.BookingRecord
	err = s.repo.InTx(ctx, accountID, date, func(tx repository.BookingTx) error {
		// The service is resolved again inside the transaction even
		// when the caller just consulted the Calculator: it may have
		// been deactivated in between.
		svc, err := tx.GetActiveService(ctx, accountID, serviceID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("service", err)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve service: %w", err)
		}

		// Exact-match fast path. Subsumed by the overlap check when
		// the clash is same service and time; kept for the friendlier
		// message.
		exists, err := tx.ExistsAt(ctx, accountID, serviceID, date, start)
		if err != nil {
			return fmt.Errorf("failed to check existing booking: %w", err)
		}
		if exists {
			s.observeConflict(metrics.ConflictExactSlot)
			return apperrors.Conflict("this slot was just taken, please pick another time")
		}

		requested := model.NewInterval(start, svc.OccupiedMinutes())
		occupied, err := tx.ListOccupied(ctx, accountID, date)
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		for _, booked := range occupied {
			if requested.Overlaps(booked.Occupied()) {
				s.observeConflict(metrics.ConflictOverlap)
				return apperrors.Conflict("the requested time overlaps an existing booking, please pick another time")
			}
		}

		now := s.now()
		booking := &model.Booking{
			ID:            uuid.New(),
			AccountID:     accountID,
			ServiceID:     serviceID,
			Date:          date,
			StartTime:     start,
			Status:        model.BookingStatusConfirmed,
			CustomerName:  req.Customer.Name,
			CustomerEmail: req.Customer.Email,
			CustomerPhone: req.Customer.Phone,
			Note:          req.Note,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Insert(ctx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		record = &model.BookingRecord{
			ID:            booking.ID,
			ServiceID:     svc.ID,
			ServiceName:   svc.Name,
			Date:          booking.Date,
			Time:          booking.StartTime,
			Status:        booking.Status,
			CustomerName:  booking.CustomerName,
			CustomerEmail: booking.CustomerEmail,
			CustomerPhone: booking.CustomerPhone,
			CreatedAt:     booking.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCreated(record)
	return record, nil
}

func (s *Service) observeConflict(kind string) {
	if s.metrics != nil {
		s.metrics.ConflictsDetected.WithLabelValues(kind).Inc()
	}
}

// notifyCreated fires the post-commit hook on its own context so the
// caller's request lifecycle cannot cancel it. Failures are logged and
// swallowed.
func (s *Service) notifyCreated(record *model.BookingRecord) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.BookingCreated(ctx, record); err != nil {
			s.logger.Error().
				Err(err).
				Str("booking_id", record.ID.String()).
				Msg("booking created notification failed")
		}
	}()
}

// CancelBooking flips the booking to cancelled. The row is kept; its
// interval becomes available again on the next Calculator call.
func (s *Service) CancelBooking(ctx context.Context, accountID, bookingID uuid.UUID) error {
	booking, err := s.GetBooking(ctx, accountID, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == model.BookingStatusCancelled {
		return apperrors.BadRequest("booking is already cancelled", nil)
	}

	if err := s.repo.UpdateStatus(ctx, accountID, bookingID, model.BookingStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("booking", err)
		}
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

func (s *Service) GetBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, accountID, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("booking", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, accountID uuid.UUID, date model.Date) ([]*model.Booking, error) {
	bookings, err := s.repo.ListForDate(ctx, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
