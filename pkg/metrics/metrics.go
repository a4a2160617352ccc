package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuditsTotal           *prometheus.CounterVec
	AuditDuration         *prometheus.HistogramVec
	ObstructionsDismissed *prometheus.CounterVec
	JobsInFlight          prometheus.Gauge
)

func Init() {
	AuditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audits_total",
			Help: "Total number of audit jobs.",
		},
		[]string{"status", "device"}, // status: success, failure
	)

	AuditDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_duration_seconds",
			Help:    "Duration of audit jobs.",
			Buckets: []float64{5, 15, 30, 60, 120, 240, 480},
		},
		[]string{"device"},
	)

	ObstructionsDismissed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obstructions_dismissed_total",
			Help: "Total number of page obstructions dismissed before capture.",
		},
		[]string{"category"},
	)

	JobsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "batch_jobs_inflight",
			Help: "Number of audit jobs currently executing (0 or 1).",
		},
	)
}
