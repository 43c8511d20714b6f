package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conflict kinds reported by the booking flow.
const (
	ConflictExactSlot = "exact_slot"
	ConflictOverlap   = "overlap"
)

// Metrics holds the domain collectors. HTTP-level request metrics live
// in the router; these track what the booking flow itself did.
type Metrics struct {
	// SlotsComputed counts open slots returned by availability
	// computations.
	SlotsComputed prometheus.Counter

	// ConflictsDetected counts booking attempts rejected inside the
	// booking transaction, labelled by conflict kind.
	ConflictsDetected *prometheus.CounterVec
}

// New registers the domain collectors with reg. Pass
// prometheus.DefaultRegisterer in production; tests use their own
// registry so repeated registration cannot collide.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SlotsComputed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_slots_computed_total",
			Help:      "Open slots returned by availability computations",
		}),
		ConflictsDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected due to a conflict",
		}, []string{"kind"}),
	}
}
