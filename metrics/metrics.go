package metrics

import "time"

// Counter and latency names emitted by the dispatcher.
const (
	CounterDispatch      = "dispatch"
	CounterRuntimeError  = "runtime_error"
	CounterDecodeFailure = "decode_failure"
	CounterLangError     = "lang_error"

	LatencyInvoke = "invoke"
	LatencyCreate = "create"

	// LabelRuntime carries the runtime name on every observation.
	LabelRuntime = "runtime"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
