package mapping

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/signadot/mpmap/tree"
)

// Metrics counts engine calls by operation and result and observes
// document sizes.
type Metrics struct {
	calls *prometheus.CounterVec
	size  *prometheus.HistogramVec
}

// NewMetrics creates metrics registered with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mpmap",
			Subsystem: "engine",
			Name:      "calls_total",
			Help:      "Number of extract and merge calls by result.",
		}, []string{"op", "result"}),
		size: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mpmap",
			Subsystem: "engine",
			Name:      "result_bytes",
			Help:      "Size of successful results in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}, []string{"op"}),
	}
}

func (m *Metrics) observe(op string, n int, err error) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(op, resultLabel(err)).Inc()
	if err == nil {
		m.size.WithLabelValues(op).Observe(float64(n))
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrMalformedDocument):
		return "malformed_document"
	case errors.Is(err, ErrNoMatchFound):
		return "no_match"
	case errors.Is(err, ErrNonObjectSource):
		return "non_object_source"
	case errors.Is(err, ErrNonObjectTarget):
		return "non_object_target"
	case errors.Is(err, ErrNonObjectResult):
		return "non_object_result"
	case errors.Is(err, tree.ErrDocumentTooLarge):
		return "too_large"
	default:
		return "error"
	}
}
