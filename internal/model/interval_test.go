package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func iv(start, end ClockMinutes) Interval {
	return Interval{Start: start, End: end}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint before", a: iv(540, 570), b: iv(600, 630), want: false},
		{name: "disjoint after", a: iv(600, 630), b: iv(540, 570), want: false},
		{name: "adjacent half-open", a: iv(540, 600), b: iv(600, 660), want: false},
		{name: "adjacent reversed", a: iv(600, 660), b: iv(540, 600), want: false},
		{name: "partial overlap", a: iv(540, 610), b: iv(600, 660), want: true},
		{name: "contained", a: iv(600, 620), b: iv(540, 660), want: true},
		{name: "containing", a: iv(540, 660), b: iv(600, 620), want: true},
		{name: "identical", a: iv(600, 640), b: iv(600, 640), want: true},
		{name: "single minute overlap", a: iv(599, 601), b: iv(600, 660), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestBookedIntervalOccupied(t *testing.T) {
	// 10:00 booking, 30 min duration, 10 min buffer occupies [10:00, 10:40)
	b := BookedInterval{StartTime: 600, DurationMinutes: 30, BufferMinutes: 10}
	assert.Equal(t, iv(600, 640), b.Occupied())

	// a 20 minute appointment at 10:15 collides with it
	candidate := NewInterval(615, 20)
	assert.True(t, candidate.Overlaps(b.Occupied()))
}

func TestIntervalContains(t *testing.T) {
	assert.True(t, iv(540, 1080).Contains(iv(600, 660)))
	assert.True(t, iv(540, 1080).Contains(iv(540, 1080)))
	assert.False(t, iv(540, 1080).Contains(iv(500, 600)))
}
