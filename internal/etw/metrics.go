package etw

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TraceMetrics contains the facility's self-instrumentation. Registered on
// the default registerer; whether anything scrapes or gathers it is the
// embedding application's business.
type TraceMetrics struct {
	SessionsStarted     prometheus.Counter
	SessionStartRetries prometheus.Counter
	OpenSessions        prometheus.Gauge
	RecordsWritten      prometheus.Counter
	WriteErrors         prometheus.Counter
}

var (
	metrics     *TraceMetrics
	metricsOnce sync.Once
)

// Metrics returns the initialized metrics.
func Metrics() *TraceMetrics {
	metricsOnce.Do(func() {
		metrics = &TraceMetrics{
			SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "etw_minilog_sessions_started_total",
				Help: "Tracing sessions started successfully",
			}),
			SessionStartRetries: promauto.NewCounter(prometheus.CounterOpts{
				Name: "etw_minilog_session_start_retries_total",
				Help: "Session starts that had to stop a stale session with the same name and retry",
			}),
			OpenSessions: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "etw_minilog_open_sessions",
				Help: "Tracing sessions currently open",
			}),
			RecordsWritten: promauto.NewCounter(prometheus.CounterOpts{
				Name: "etw_minilog_records_written_total",
				Help: "Records written through EventWrite",
			}),
			WriteErrors: promauto.NewCounter(prometheus.CounterOpts{
				Name: "etw_minilog_write_errors_total",
				Help: "EventWrite calls that returned a failure",
			}),
		}
	})
	return metrics
}
