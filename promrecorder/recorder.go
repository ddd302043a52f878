// Package promrecorder exports filelog activity as Prometheus counters.
package promrecorder

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sivaosorg/filelog"
)

// Recorder implements filelog.Recorder with Prometheus counters.
type Recorder struct {
	records *prometheus.CounterVec
	bytes   prometheus.Counter
	flushes prometheus.Counter
	errors  *prometheus.CounterVec
}

var _ filelog.Recorder = (*Recorder)(nil)

// New creates the counters and registers them with reg. A nil reg uses the
// default registerer.
//
// Exposed metrics:
//   - <namespace>_records_total{level,outcome}: records emitted or dropped by the threshold
//   - <namespace>_bytes_written_total: bytes appended to the log
//   - <namespace>_flushes_total: forced syncs
//   - <namespace>_errors_total{kind}: errors by class (configuration, io, format)
func New(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Log records by severity and outcome.",
		}, []string{"level", "outcome"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Bytes appended to the log target.",
		}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Forced syncs of the log file.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Logging errors by class.",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{r.records, r.bytes, r.flushes, r.errors} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register filelog metrics")
		}
	}
	return r, nil
}

// Emitted counts a record that passed the threshold.
func (r *Recorder) Emitted(level filelog.Severity) {
	r.records.WithLabelValues(string(level), "emitted").Inc()
}

// Dropped counts a record filtered out by the threshold.
func (r *Recorder) Dropped(level filelog.Severity) {
	r.records.WithLabelValues(string(level), "dropped").Inc()
}

// Written adds n to the bytes counter.
func (r *Recorder) Written(n int) {
	r.bytes.Add(float64(n))
}

// Flushed counts a forced sync.
func (r *Recorder) Flushed() {
	r.flushes.Inc()
}

// Failed counts err under its taxonomy class.
func (r *Recorder) Failed(err error) {
	r.errors.WithLabelValues(filelog.Kind(err)).Inc()
}
