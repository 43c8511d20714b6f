package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ClockMinutes is a time of day expressed as minutes since midnight.
// The wire and storage representation is a 24-hour "HH:mm" string.
type ClockMinutes int

const minutesPerDay = 24 * 60

// ParseClock parses a 24-hour "HH:mm" string. All five bytes are
// checked; whitespace and trailing garbage are rejected rather than
// rounded to some nearby minute.
func ParseClock(s string) (ClockMinutes, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", s)
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: expected HH:mm", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return ClockMinutes(h*60 + m), nil
}

// ClockOf truncates a wall-clock instant to its minute of day in t's location.
func ClockOf(t time.Time) ClockMinutes {
	return ClockMinutes(t.Hour()*60 + t.Minute())
}

func (c ClockMinutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock time shifted by the given number of minutes.
// Callers are expected to stay within the same day.
func (c ClockMinutes) Add(minutes int) ClockMinutes {
	return c + ClockMinutes(minutes)
}

// Valid reports whether the value lies within a single day.
func (c ClockMinutes) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

func (c ClockMinutes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *ClockMinutes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid time %s: expected string", data)
	}
	parsed, err := ParseClock(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer; times are stored as "HH:mm" text.
func (c ClockMinutes) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner.
func (c *ClockMinutes) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		parsed, err := ParseClock(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case time.Time:
		*c = ClockOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ClockMinutes", src)
	}
}
