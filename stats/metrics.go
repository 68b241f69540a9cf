package stats

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
)

// Metrics wraps the Prometheus collectors a Ledger reports through,
// labelled by this run's id so several simulation runs can be scraped from
// one process without colliding (adapted from the teacher's
// control/metrics.go counters, generalized from connection-level gauges to
// per-packet latency histograms and per-kind error counters).
type Metrics struct {
	RunID string

	queueingDelay *prometheus.HistogramVec
	transferDelay *prometheus.HistogramVec
	dataRate      prometheus.Gauge
	errors        *prometheus.CounterVec
}

// NewMetrics registers the collectors against reg and returns a Metrics
// tagged with a freshly generated run id. reg may be a dedicated
// prometheus.NewRegistry() or prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	runID := xid.New().String()
	constLabels := prometheus.Labels{"run_id": runID}

	m := &Metrics{
		RunID: runID,
		queueingDelay: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "ringsim",
			Name:        "queueing_delay",
			Help:        "Time a data packet spent in its sender's RAM queue.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"source", "destination"}),
		transferDelay: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "ringsim",
			Name:        "transfer_delay",
			Help:        "Time a data packet spent in flight on the ring.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"source", "destination"}),
		dataRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringsim",
			Name:        "cumulative_data_rate",
			Help:        "Cumulative delivered bits per unit time, as of the most recent delivery.",
			ConstLabels: constLabels,
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "ringsim",
			Name:        "runtime_errors_total",
			Help:        "Count of runtime transmission anomalies by kind.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{m.queueingDelay, m.transferDelay, m.dataRate, m.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeLatency(source, destination int, queueingDelay, transferDelay int64, dataRate float64) {
	labels := prometheus.Labels{"source": strconv.Itoa(source), "destination": strconv.Itoa(destination)}
	m.queueingDelay.With(labels).Observe(float64(queueingDelay))
	m.transferDelay.With(labels).Observe(float64(transferDelay))
	m.dataRate.Set(dataRate)
}

func (m *Metrics) observeError(kind ErrorKind) {
	m.errors.With(prometheus.Labels{"kind": kind.String()}).Inc()
}
