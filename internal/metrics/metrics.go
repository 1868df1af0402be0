package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	checkIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "check_in_total",
			Help:      "Count of check-ins by resulting room status.",
		},
		[]string{"status"},
	)

	checkOuts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "check_out_total",
			Help:      "Count of finalized check-outs.",
		},
	)

	chargesAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "charge_added_total",
			Help:      "Count of incidental charges recorded.",
		},
	)

	reportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "report_generated_total",
			Help:      "Count of revenue reports by cache outcome.",
		},
		[]string{"source"},
	)

	authFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "auth_failure_total",
			Help:      "Count of failed login attempts.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(checkIns, checkOuts, chargesAdded, reportsGenerated, authFailures)
	})
}

func IncCheckIn(status string) {
	checkIns.WithLabelValues(status).Inc()
}

func IncCheckOut() {
	checkOuts.Inc()
}

func IncChargeAdded() {
	chargesAdded.Inc()
}

func IncReportGenerated(source string) {
	reportsGenerated.WithLabelValues(source).Inc()
}

func IncAuthFailure() {
	authFailures.Inc()
}
