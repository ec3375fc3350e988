package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the dispatcher collectors on reg. A nil reg
// means the default registerer. Recorders created on the same registerer
// share the collectors registered by the first one.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkcall",
			Name:      "events_total",
			Help:      "Dispatch, runtime error, decode failure and language error counts.",
		},
		[]string{"type", LabelRuntime},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inkcall",
			Name:      "latency_seconds",
			Help:      "Invoke and create latency including output decoding.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", LabelRuntime},
	)

	counters, err := register(reg, counters)
	if err != nil {
		return nil, err
	}
	histogram, err = register(reg, histogram)
	if err != nil {
		return nil, err
	}

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}, nil
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"type":       name,
		LabelRuntime: labels[LabelRuntime],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation":  name,
		LabelRuntime: labels[LabelRuntime],
	}).Observe(d.Seconds())
}

// register adds c to reg, or returns the equivalent collector already
// registered there.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
