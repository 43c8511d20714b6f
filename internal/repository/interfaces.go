package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/booking-api/internal/model"
)

// ErrNotFound is returned by repositories when a row does not exist.
// Services translate it into their own error taxonomy.
var ErrNotFound = errors.New("not found")

// AccountRepository reads tenant settings.
type AccountRepository interface {
	Get(ctx context.Context, accountID uuid.UUID) (*model.Account, error)
}

// ServiceRepository resolves services scoped to an account.
type ServiceRepository interface {
	// GetActive returns the service only when it exists, belongs to
	// the account, and is active; ErrNotFound otherwise.
	GetActive(ctx context.Context, accountID, serviceID uuid.UUID) (*model.Service, error)
}

// ScheduleRepository resolves the per-weekday business hours rows.
type ScheduleRepository interface {
	// GetForWeekday returns ErrNotFound when no row exists for the
	// weekday. A disabled day is returned as-is, not as an error.
	GetForWeekday(ctx context.Context, accountID uuid.UUID, weekday time.Weekday) (*model.Schedule, error)
}

// BookingRepository is the read-side booking store plus the entry
// point into the write-side unit of work.
type BookingRepository interface {
	Get(ctx context.Context, accountID, bookingID uuid.UUID) (*model.Booking, error)
	ListForDate(ctx context.Context, accountID uuid.UUID, date model.Date) ([]*model.Booking, error)

	// ListOccupied returns the occupied-interval projections of all
	// non-cancelled bookings for the account and date, any service.
	ListOccupied(ctx context.Context, accountID uuid.UUID, date model.Date) ([]model.BookedInterval, error)

	UpdateStatus(ctx context.Context, accountID, bookingID uuid.UUID, status model.BookingStatus) error

	// InTx runs fn inside one transaction serialized per (account,
	// date): while fn runs, no other InTx call for the same key can
	// observe or commit bookings. fn returning an error rolls the
	// whole transaction back.
	InTx(ctx context.Context, accountID uuid.UUID, date model.Date, fn func(BookingTx) error) error
}

// BookingTx is the transactional handle handed to InTx callbacks. All
// reads see the transaction's isolated state.
type BookingTx interface {
	GetActiveService(ctx context.Context, accountID, serviceID uuid.UUID) (*model.Service, error)

	// ExistsAt reports whether a non-cancelled booking already sits
	// at exactly (account, service, date, time).
	ExistsAt(ctx context.Context, accountID, serviceID uuid.UUID, date model.Date, start model.ClockMinutes) (bool, error)

	ListOccupied(ctx context.Context, accountID uuid.UUID, date model.Date) ([]model.BookedInterval, error)

	Insert(ctx context.Context, booking *model.Booking) error
}
