package model

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable offering. Buffer is a mandatory idle gap
// appended after the duration before the next booking may start.
type Service struct {
	ID              uuid.UUID `db:"id" json:"id"`
	AccountID       uuid.UUID `db:"account_id" json:"account_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	BufferMinutes   int       `db:"buffer_minutes" json:"buffer_minutes"`
	Price           float64   `db:"price" json:"price"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// OccupiedMinutes is the full span a booking of this service removes
// from availability.
func (s *Service) OccupiedMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
