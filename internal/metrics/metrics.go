// Package metrics exposes Prometheus instrumentation for the task
// platform, generalizing cmd/advanced's ProcessorMetrics from a single
// demo processor into per-manager counters, a duration histogram, and
// an active-worker gauge registered against an explicit registry rather
// than the global default one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and gauges the task platform updates as
// jobs are queued, run, and completed.
type Metrics struct {
	tasksProcessed prometheus.Counter
	taskDuration   prometheus.Histogram
	activeWorkers  prometheus.Gauge
	taskErrors     prometheus.Counter
}

// New builds Metrics labelled with managerName and registers them
// against reg.
func New(reg *prometheus.Registry, managerName string) *Metrics {
	m := &Metrics{
		tasksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tasks_processed_total",
			Help:        "Total number of worker tasks that have finished running",
			ConstLabels: prometheus.Labels{"manager": managerName},
		}),
		taskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "task_duration_seconds",
			Help:        "Worker task run duration",
			ConstLabels: prometheus.Labels{"manager": managerName},
			Buckets:     prometheus.DefBuckets,
		}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "active_workers",
			Help:        "Number of worker tasks currently running",
			ConstLabels: prometheus.Labels{"manager": managerName},
		}),
		taskErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "task_errors_total",
			Help:        "Total number of worker tasks that finished with an error",
			ConstLabels: prometheus.Labels{"manager": managerName},
		}),
	}

	reg.MustRegister(m.tasksProcessed, m.taskDuration, m.activeWorkers, m.taskErrors)

	return m
}

// ObserveTaskStart increments the active-worker gauge. Call ObserveTaskEnd
// with the same started value once the task returns.
func (m *Metrics) ObserveTaskStart() (started time.Time) {
	m.activeWorkers.Inc()
	return time.Now()
}

// ObserveTaskEnd records a finished task's duration and outcome, and
// decrements the active-worker gauge.
func (m *Metrics) ObserveTaskEnd(started time.Time, err error) {
	m.activeWorkers.Dec()
	m.tasksProcessed.Inc()
	m.taskDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		m.taskErrors.Inc()
	}
}
