package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels recorded per exchange.
const (
	ResultOK       = "ok"
	ResultEncoding = "encoding_error"
	ResultChannel  = "channel_error"
	ResultShort    = "short_read"
	ResultError    = "error"
)

// Metrics collects exchange counters on a private registry so a one-shot
// process can export them to a node_exporter textfile.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	responseBytes *prometheus.HistogramVec
	lastSuccess   *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rqstctl",
				Subsystem: "exchange",
				Name:      "requests_total",
				Help:      "Total device requests by command and result.",
			},
			[]string{"command", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rqstctl",
				Subsystem: "exchange",
				Name:      "duration_seconds",
				Help:      "Device request round trip duration in seconds.",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"command"},
		),
		responseBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rqstctl",
				Subsystem: "exchange",
				Name:      "response_bytes",
				Help:      "Decoded response payload length.",
				Buckets:   prometheus.LinearBuckets(0, 32, 9),
			},
			[]string{"command"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "rqstctl",
				Subsystem: "exchange",
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful exchange.",
			},
			[]string{"command"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.responseBytes, m.lastSuccess)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordExchange records one finished exchange. result is one of the Result
// constants.
func (m *Metrics) RecordExchange(command, result string, duration time.Duration, responseLen int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(command, result).Inc()
	m.duration.WithLabelValues(command).Observe(duration.Seconds())
	if result == ResultOK {
		m.responseBytes.WithLabelValues(command).Observe(float64(responseLen))
		m.lastSuccess.WithLabelValues(command).SetToCurrentTime()
	}
}

// WriteTextfile writes all metrics in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return errors.New("observability: metrics not initialized")
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
