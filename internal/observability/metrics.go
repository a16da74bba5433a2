// Package observability registers Prometheus metrics for the tracker.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "users",
		Name:      "created_total",
		Help:      "Total number of users registered.",
	})
	exercisesCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "exercises",
		Name:      "created_total",
		Help:      "Total number of exercises persisted.",
	})
	exercisePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Subsystem: "exercises",
		Name:      "last_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the occurrence date on the most recently persisted exercise.",
	})
)

func init() {
	prometheus.MustRegister(usersCreatedCounter, exercisesCreatedCounter, exercisePersistGauge)
}

// RecordUserCreated increments the user registration counter.
func RecordUserCreated() {
	usersCreatedCounter.Inc()
}

// RecordExercisePersisted updates the exercise counters and watermark gauge.
func RecordExercisePersisted(ts time.Time) {
	exercisesCreatedCounter.Inc()
	if ts.IsZero() {
		return
	}
	exercisePersistGauge.Set(float64(ts.Unix()))
}
