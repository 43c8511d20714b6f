package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
)

// occupiedQuery projects every non-cancelled booking for the account
// and date onto its occupied interval, joining the owning service for
// the duration and buffer as they stand now.
const occupiedQuery = `
	SELECT b.start_time, s.duration_minutes, s.buffer_minutes
	FROM bookings b
	JOIN services s ON s.id = b.service_id
	WHERE b.account_id = $1
	AND b.date = $2
	AND b.status <> 'cancelled'
	ORDER BY b.start_time ASC
`

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *bookingRepository) Get(ctx context.Context, accountID, bookingID uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, account_id, service_id, date, start_time, status,
			   customer_name, customer_email, customer_phone, note,
			   created_at, updated_at
		FROM bookings
		WHERE id = $1 AND account_id = $2
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListForDate(ctx context.Context, accountID uuid.UUID, date model.Date) ([]*model.Booking, error) {
	query := `
		SELECT id, account_id, service_id, date, start_time, status,
			   customer_name, customer_email, customer_phone, note,
			   created_at, updated_at
		FROM bookings
		WHERE account_id = $1 AND date = $2
		ORDER BY start_time ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListOccupied(ctx context.Context, accountID uuid.UUID, date model.Date) ([]model.BookedInterval, error) {
	return listOccupied(ctx, r.db, accountID, date)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, accountID, bookingID uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND account_id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), bookingID, accountID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// InTx serializes the check-then-write sequence per (account, date)
// with a transaction-scoped advisory lock: two concurrent validators
// for the same key queue behind each other, so neither can observe
// "no conflict" for intervals the other is about to commit.
func (r *bookingRepository) InTx(ctx context.Context, accountID uuid.UUID, date model.Date, fn func(repository.BookingTx) error) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`,
			accountID.String(), date.String(),
		); err != nil {
			return fmt.Errorf("failed to acquire booking lock: %w", err)
		}
		return fn(&bookingTx{tx: tx})
	})
}

// bookingTx implements repository.BookingTx on top of one *sqlx.Tx.
type bookingTx struct {
	tx *sqlx.Tx
}

func (t *bookingTx) GetActiveService(ctx context.Context, accountID, serviceID uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := t.tx.GetContext(ctx, &svc, activeServiceQuery, serviceID, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (t *bookingTx) ExistsAt(ctx context.Context, accountID, serviceID uuid.UUID, date model.Date, start model.ClockMinutes) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE account_id = $1
			AND service_id = $2
			AND date = $3
			AND start_time = $4
			AND status <> 'cancelled'
		)
	`
	var exists bool
	err := t.tx.GetContext(ctx, &exists, query, accountID, serviceID, date, start)
	if err != nil {
		return false, fmt.Errorf("failed to check existing booking: %w", err)
	}
	return exists, nil
}

func (t *bookingTx) ListOccupied(ctx context.Context, accountID uuid.UUID, date model.Date) ([]model.BookedInterval, error) {
	return listOccupied(ctx, t.tx, accountID, date)
}

func (t *bookingTx) Insert(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, account_id, service_id, date, start_time, status,
			customer_name, customer_email, customer_phone, note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := t.tx.ExecContext(ctx, query,
		booking.ID,
		booking.AccountID,
		booking.ServiceID,
		booking.Date,
		booking.StartTime,
		booking.Status,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Note,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func listOccupied(ctx context.Context, q sqlx.QueryerContext, accountID uuid.UUID, date model.Date) ([]model.BookedInterval, error) {
	rows, err := q.QueryxContext(ctx, occupiedQuery, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupied intervals: %w", err)
	}
	defer rows.Close()

	var intervals []model.BookedInterval
	for rows.Next() {
		var iv model.BookedInterval
		if err := rows.StructScan(&iv); err != nil {
			return nil, fmt.Errorf("failed to scan occupied interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read occupied intervals: %w", err)
	}
	return intervals, nil
}
