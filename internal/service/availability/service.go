package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
	"github.com/bookwell/booking-api/internal/service/account"
	apperrors "github.com/bookwell/booking-api/pkg/errors"
	"github.com/bookwell/booking-api/pkg/metrics"
)

// Options tunes one slot computation. Zero values defer to the
// account's configured settings.
type Options struct {
	// StepMinutes overrides the account's grid step when positive.
	StepMinutes int
	// Location overrides the zone used to resolve "today" and the
	// past-time cutoff. When nil the account's configured zone is
	// used, resolved once by the caller's boundary.
	Location *time.Location
}

// Service computes the open slot grid for a date. It is a pure read:
// no shared mutable state, safe for unlimited concurrent callers, and
// every call recomputes from a fresh snapshot.
type Service struct {
	services  repository.ServiceRepository
	schedules repository.ScheduleRepository
	bookings  repository.BookingRepository
	accounts  *account.Service
	metrics   *metrics.Metrics

	now func() time.Time
}

func NewService(
	services repository.ServiceRepository,
	schedules repository.ScheduleRepository,
	bookings repository.BookingRepository,
	accounts *account.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		services:  services,
		schedules: schedules,
		bookings:  bookings,
		accounts:  accounts,
		metrics:   m,
		now:       time.Now,
	}
}

// GetAvailableSlots returns the open start times for the date as
// ascending "HH:mm" strings. A day with no schedule row, or one that
// is disabled, yields an empty list: "closed" is not an error. A
// missing or inactive service is.
func (s *Service) GetAvailableSlots(ctx context.Context, accountID, serviceID uuid.UUID, date model.Date, opts Options) ([]string, error) {
	svc, err := s.services.GetActive(ctx, accountID, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}

	schedule, err := s.schedules.GetForWeekday(ctx, accountID, date.Weekday())
	if errors.Is(err, repository.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule: %w", err)
	}
	if !schedule.Enabled {
		return []string{}, nil
	}

	step := opts.StepMinutes
	if step <= 0 {
		step, err = s.accounts.StepMinutes(ctx, accountID)
		if err != nil {
			return nil, err
		}
	}

	candidates := buildGrid(schedule, svc.DurationMinutes, step)

	occupied, err := s.bookings.ListOccupied(ctx, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	candidates = dropBooked(candidates, svc.DurationMinutes, occupied)

	loc := opts.Location
	if loc == nil {
		loc, err = s.accounts.Location(ctx, accountID)
		if err != nil {
			return nil, err
		}
	}
	candidates = dropPast(candidates, date, s.now().In(loc))

	slots := make([]string, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, c.String())
	}
	if s.metrics != nil {
		s.metrics.SlotsComputed.Add(float64(len(slots)))
	}
	return slots, nil
}

// buildGrid walks the step grid across the business hours, keeping a
// candidate c only when the appointment [c, c+duration) fits before
// closing and stays clear of the break window. The grid is driven by
// the step alone, never by existing bookings.
func buildGrid(schedule *model.Schedule, durationMinutes, stepMinutes int) []model.ClockMinutes {
	var grid []model.ClockMinutes
	for c := schedule.StartTime; c.Add(durationMinutes) <= schedule.EndTime; c = c.Add(stepMinutes) {
		if schedule.HasBreak() {
			if model.NewInterval(c, durationMinutes).Overlaps(schedule.BreakWindow()) {
				continue
			}
		}
		grid = append(grid, c)
	}
	return grid
}

// dropBooked removes candidates whose appointment window overlaps any
// occupied interval [start, start+duration+buffer) of a non-cancelled
// booking, regardless of service.
func dropBooked(candidates []model.ClockMinutes, durationMinutes int, occupied []model.BookedInterval) []model.ClockMinutes {
	if len(occupied) == 0 {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		window := model.NewInterval(c, durationMinutes)
		clear := true
		for _, booked := range occupied {
			if window.Overlaps(booked.Occupied()) {
				clear = false
				break
			}
		}
		if clear {
			kept = append(kept, c)
		}
	}
	return kept
}

// dropPast removes candidates not strictly after the current time when
// date is today in the resolved zone. Future dates pass untouched.
func dropPast(candidates []model.ClockMinutes, date model.Date, now time.Time) []model.ClockMinutes {
	if !model.DateOf(now).Equal(date) {
		return candidates
	}
	cutoff := model.ClockOf(now)
	kept := candidates[:0]
	for _, c := range candidates {
		if c > cutoff {
			kept = append(kept, c)
		}
	}
	return kept
}
