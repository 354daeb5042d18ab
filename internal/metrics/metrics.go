// Package metrics records what a command run did as Prometheus metrics.
//
// The commands are batch jobs, so nothing is scraped: each run fills its own
// registry and writes it once to a file for the node exporter textfile
// collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/surveyclean/internal/core"
)

const namespace = "surveyclean"

// Run holds the metrics of one command run.
type Run struct {
	registry *prometheus.Registry

	recordsLoaded     prometheus.Counter
	recordsWritten    prometheus.Counter
	duplicatesRemoved prometheus.Counter
	invalidRemoved    *prometheus.CounterVec
	weightStatus      *prometheus.GaugeVec
	stageDuration     *prometheus.HistogramVec
	lastRun           prometheus.Gauge
}

// NewRun builds a registry whose metrics carry the command name as a label.
func NewRun(command string) *Run {
	labels := prometheus.Labels{"command": command}
	r := &Run{
		registry: prometheus.NewRegistry(),
		recordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_loaded_total",
			Help:        "Records read from the input.",
			ConstLabels: labels,
		}),
		recordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_written_total",
			Help:        "Records written to the output.",
			ConstLabels: labels,
		}),
		duplicatesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "duplicates_removed_total",
			Help:        "Exact duplicate records dropped.",
			ConstLabels: labels,
		}),
		invalidRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "invalid_checks_failed_total",
			Help:        "Validity checks failed by dropped records, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		weightStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "weight_status_records",
			Help:        "Records per weight status category before the validity filter.",
			ConstLabels: labels,
		}, []string{"status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "stage_duration_seconds",
			Help:        "Time spent in each pipeline stage.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the run finished.",
			ConstLabels: labels,
		}),
	}

	r.registry.MustRegister(
		r.recordsLoaded,
		r.recordsWritten,
		r.duplicatesRemoved,
		r.invalidRemoved,
		r.weightStatus,
		r.stageDuration,
		r.lastRun,
	)
	return r
}

// Loaded counts records read from the input.
func (r *Run) Loaded(n int) { r.recordsLoaded.Add(float64(n)) }

// Written counts records written to the output.
func (r *Run) Written(n int) { r.recordsWritten.Add(float64(n)) }

// DuplicatesRemoved counts dropped duplicates.
func (r *Run) DuplicatesRemoved(n int) { r.duplicatesRemoved.Add(float64(n)) }

// ObserveSummary records a pipeline summary.
func (r *Run) ObserveSummary(sum core.Summary) {
	r.DuplicatesRemoved(sum.DuplicatesRemoved)
	for reason, n := range sum.InvalidReasons {
		r.invalidRemoved.WithLabelValues(reason).Add(float64(n))
	}
	for _, status := range core.WeightStatuses {
		r.weightStatus.WithLabelValues(status).Set(float64(sum.WeightStatus[status]))
	}
	for _, st := range sum.Stages {
		r.stageDuration.WithLabelValues(st.Name).Observe(st.Duration.Seconds())
	}
}

// WriteTextfile stamps the finish time and writes every metric to path.
func (r *Run) WriteTextfile(path string) error {
	r.lastRun.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, r.registry)
}
