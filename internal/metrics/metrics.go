// Package metrics counts run outcomes in a Prometheus registry and writes
// them in the node_exporter textfile format, so scheduled migrations can be
// monitored without a long-running process.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/migrate"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/suggest"
)

// Recorder holds the run metrics.
type Recorder struct {
	registry    *prometheus.Registry
	outcomes    *prometheus.CounterVec
	suggestions *prometheus.CounterVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
	duplicates  prometheus.Gauge
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marksync_outcomes_total",
			Help: "Source entries processed, by outcome kind.",
		}, []string{"kind"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marksync_suggestions_total",
			Help: "Destination records examined by suggest, by status.",
		}, []string{"status"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marksync_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marksync_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
		duplicates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marksync_unmanaged_duplicates",
			Help: "Destination records sharing a URL with another record, seen during the last run.",
		}),
	}
	r.registry.MustRegister(r.outcomes, r.suggestions, r.duration, r.lastRun, r.duplicates)
	for _, k := range reconciler.Kinds {
		r.outcomes.WithLabelValues(k.String())
	}
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Outcome counts one migration outcome.
func (r *Recorder) Outcome(out reconciler.Outcome) {
	r.outcomes.WithLabelValues(out.Kind.String()).Inc()
}

// Suggestion counts one suggest status.
func (r *Recorder) Suggestion(status suggest.Status) {
	r.suggestions.WithLabelValues(string(status)).Inc()
}

// Migration records the totals of a finished migration.
func (r *Recorder) Migration(res *migrate.Result) {
	r.duration.Set(res.Duration().Seconds())
	r.lastRun.Set(float64(res.FinishedAt.Time.Unix()))
	r.duplicates.Set(float64(res.UnmanagedDuplicates))
}

// Finish stamps a run that has no migration result, such as suggest.
func (r *Recorder) Finish(elapsed time.Duration) {
	r.duration.Set(elapsed.Seconds())
	r.lastRun.SetToCurrentTime()
}

// WriteFile writes the registry to path atomically in the text exposition
// format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
