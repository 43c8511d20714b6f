package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a reserved slot. Cancellation flips the status, never
// deletes the row, and immediately frees the occupied interval.
type Booking struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	AccountID     uuid.UUID     `db:"account_id" json:"account_id"`
	ServiceID     uuid.UUID     `db:"service_id" json:"service_id"`
	Date          Date          `db:"date" json:"date"`
	StartTime     ClockMinutes  `db:"start_time" json:"time"`
	Status        BookingStatus `db:"status" json:"status"`
	CustomerName  string        `db:"customer_name" json:"customer_name"`
	CustomerEmail string        `db:"customer_email" json:"customer_email"`
	CustomerPhone string        `db:"customer_phone" json:"customer_phone,omitempty"`
	Note          string        `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// BookedInterval is the projection of a booking needed for conflict
// checks: its start plus the duration and buffer of its service as
// they stand now.
type BookedInterval struct {
	StartTime       ClockMinutes `db:"start_time"`
	DurationMinutes int          `db:"duration_minutes"`
	BufferMinutes   int          `db:"buffer_minutes"`
}

// Occupied returns the full [start, start+duration+buffer) span the
// booking removes from availability.
func (b BookedInterval) Occupied() Interval {
	return NewInterval(b.StartTime, b.DurationMinutes+b.BufferMinutes)
}

// BookingRecord is the persisted booking echoed back to callers.
type BookingRecord struct {
	ID            uuid.UUID     `json:"id"`
	ServiceID     uuid.UUID     `json:"service_id"`
	ServiceName   string        `json:"service_name"`
	Date          Date          `json:"date"`
	Time          ClockMinutes  `json:"time"`
	Status        BookingStatus `json:"status"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Customer carries the contact fields captured with a booking.
type Customer struct {
	Name  string `json:"name" binding:"required" validate:"required,max=200"`
	Email string `json:"email" binding:"required,email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=40"`
}

// CreateBookingRequest is the write-path input. Date and time arrive
// as plain "YYYY-MM-DD" / "HH:mm" strings with no embedded offset.
type CreateBookingRequest struct {
	ServiceID string   `json:"service_id" binding:"required" validate:"required,uuid"`
	Date      string   `json:"date" binding:"required" validate:"required"`
	Time      string   `json:"time" binding:"required" validate:"required"`
	Customer  Customer `json:"customer" binding:"required"`
	Note      string   `json:"note" validate:"max=1000"`
}
