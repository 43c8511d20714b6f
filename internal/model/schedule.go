package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Schedule defines an account's business hours for one weekday,
// optionally with a break window inside them.
type Schedule struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	AccountID  uuid.UUID     `db:"account_id" json:"account_id"`
	Weekday    time.Weekday  `db:"weekday" json:"weekday"`
	Enabled    bool          `db:"enabled" json:"enabled"`
	StartTime  ClockMinutes  `db:"start_time" json:"start_time"`
	EndTime    ClockMinutes  `db:"end_time" json:"end_time"`
	BreakStart *ClockMinutes `db:"break_start" json:"break_start,omitempty"`
	BreakEnd   *ClockMinutes `db:"break_end" json:"break_end,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// HasBreak reports whether a break window is configured.
func (s *Schedule) HasBreak() bool {
	return s.BreakStart != nil && s.BreakEnd != nil
}

// BreakWindow returns the break interval. Only meaningful when
// HasBreak is true.
func (s *Schedule) BreakWindow() Interval {
	return Interval{Start: *s.BreakStart, End: *s.BreakEnd}
}

// Validate enforces the schedule invariants: start before end, and any
// break fully inside the business hours.
func (s *Schedule) Validate() error {
	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		return fmt.Errorf("weekday must be 0-6, got %d", s.Weekday)
	}
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("start time %s must be before end time %s", s.StartTime, s.EndTime)
	}
	if (s.BreakStart == nil) != (s.BreakEnd == nil) {
		return fmt.Errorf("break start and end must be set together")
	}
	if s.HasBreak() {
		if *s.BreakStart >= *s.BreakEnd {
			return fmt.Errorf("break start %s must be before break end %s", s.BreakStart, s.BreakEnd)
		}
		if *s.BreakStart < s.StartTime || *s.BreakEnd > s.EndTime {
			return fmt.Errorf("break %s-%s must lie within business hours %s-%s",
				s.BreakStart, s.BreakEnd, s.StartTime, s.EndTime)
		}
	}
	return nil
}
