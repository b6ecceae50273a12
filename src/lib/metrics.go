package lib

import (
	"sync"

	"shareit/src/types"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "booking_decisions_total",
			Help:      "Count of owner decisions over bookings.",
		},
		[]string{"decision"},
	)

	commentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "comments_created_total",
			Help:      "Count of comments left on items.",
		},
	)
)

// RegisterMetrics registers metrics with the default registry (idempotent).
func RegisterMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingDecisions, commentsCreated)
	})
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingDecision(status types.BookingStatus) {
	bookingDecisions.WithLabelValues(string(status)).Inc()
}

func IncCommentCreated() {
	commentsCreated.Inc()
}
