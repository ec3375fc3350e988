package inkcall

import (
	"time"

	"github.com/vitwit/inkcall/logger"
	"github.com/vitwit/inkcall/metrics"
)

// Option overrides a setting taken from the config.
type Option func(*Dispatcher)

func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(d *Dispatcher) {
		d.metrics = r
	}
}

func WithTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = t
	}
}

// WithDecodeLimit sets the nesting budget used to decode every output.
func WithDecodeLimit(limit uint32) Option {
	return func(d *Dispatcher) {
		d.decodeLimit = limit
	}
}
