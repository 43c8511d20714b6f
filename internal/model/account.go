package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSlotStepMinutes is the grid step used when an account has not
// configured one.
const DefaultSlotStepMinutes = 30

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Account is a tenant. It owns services, schedules, bookings and the
// widget settings that drive slot generation.
type Account struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Email           string        `db:"email" json:"email"`
	Status          AccountStatus `db:"status" json:"status"`
	SlotStepMinutes int           `db:"slot_step_minutes" json:"slot_step_minutes"`
	// Timezone is the account's configured IANA zone. Weekday and
	// "today" resolution uses whatever location the boundary passes
	// down; this field is the boundary's usual source.
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
