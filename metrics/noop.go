package metrics

import "time"

var _ Recorder = NoopRecorder{}

// NoopRecorder discards everything. It is the dispatcher's default.
type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
