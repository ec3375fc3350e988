// Package inkcall dispatches typed contract calls to an execution runtime and
// decodes their output.
//
// Invoke accepts only calls tagged as messages and Create only calls tagged
// as constructors; leaf builders attach the tags through the call package.
// Both consume the call, hand its value and input to the
// runtime, and decode the raw output under the dispatcher's nesting budget.
package inkcall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/clients"
	"github.com/vitwit/inkcall/logger"
	"github.com/vitwit/inkcall/metrics"
	"github.com/vitwit/inkcall/types"
	"github.com/vitwit/inkcall/utils"
)

// DefaultDecodeComplexityLimit is the nesting budget applied to outputs when
// the config does not set one.
const DefaultDecodeComplexityLimit uint32 = 255

// Dispatcher is the main struct that routes calls to a runtime.
type Dispatcher struct {
	runtime     clients.Runtime
	config      *types.Config
	logger      logger.Logger
	metrics     metrics.Recorder
	timeout     time.Duration
	decodeLimit uint32
}

// New creates a dispatcher for rt. A nil config means DefaultConfig.
func New(rt clients.Runtime, config *types.Config, opts ...Option) (*Dispatcher, error) {
	if rt == nil {
		return nil, &types.Error{
			Code:    types.ErrInvalidConfig,
			Message: "runtime is required",
		}
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := utils.ValidateConfig(config); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		runtime:     rt,
		config:      config,
		logger:      logger.NoopLogger{},
		metrics:     metrics.NoopRecorder{},
		timeout:     config.Timeout.Std(),
		decodeLimit: config.DecodeComplexityLimit,
	}

	if config.LogLevel != "" {
		d.logger = logger.NewZapLogger(config.LogLevel)
	}
	if config.EnableMetrics {
		rec, err := metrics.NewPrometheusRecorder(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		d.metrics = rec
	}

	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewWithDefaults creates a dispatcher for rt with DefaultConfig.
func NewWithDefaults(rt clients.Runtime, opts ...Option) *Dispatcher {
	d, err := New(rt, DefaultConfig(), opts...)
	if err != nil {
		// DefaultConfig always validates and registers no metrics.
		panic(err)
	}
	return d
}

// WithDecodeLimit returns a copy of d that decodes with the given nesting
// budget. d itself is unchanged.
func (d *Dispatcher) WithDecodeLimit(limit uint32) *Dispatcher {
	cp := *d
	cp.decodeLimit = limit
	return &cp
}

func (d *Dispatcher) DecodeLimit() uint32 { return d.decodeLimit }

// DefaultGasLimit is the gas limit from the config, for callers without one.
func (d *Dispatcher) DefaultGasLimit() uint64 { return d.config.DefaultGasLimit }

// Close closes the runtime if it holds resources.
func (d *Dispatcher) Close() {
	switch rt := d.runtime.(type) {
	case interface{ Close() }:
		rt.Close()
	case io.Closer:
		_ = rt.Close()
	}
}

// Invoke calls an existing contract instance. Only message calls are
// accepted. The returned error reports a failure to decode the output; a
// failure inside the contract language layer is the Err arm of the Output.
func Invoke[T any](ctx context.Context, d *Dispatcher, target types.AccountID, gasLimit uint64, c call.MessageCall[T]) (call.Output[T], error) {
	value := c.NativeValue()
	input, err := c.IntoInputData()
	if err != nil {
		return call.Output[T]{}, err
	}

	fields := d.fields(input, value, gasLimit)
	fields["target"] = target.Hex()
	d.metrics.IncCounter(metrics.CounterDispatch, d.labels())
	d.logger.Debug("invoking contract", fields)

	start := time.Now()
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	raw, rtErr := d.runtime.Call(ctx, clients.CallRequest{
		Target:   target,
		GasLimit: gasLimit,
		Value:    value,
		Input:    input,
	})
	out, err := decodeOutput(d, c.Decoder(), raw, rtErr, fields)
	d.metrics.ObserveLatency(metrics.LatencyInvoke, time.Since(start), d.labels())
	return out, err
}

// Create instantiates a new contract instance. Only constructor calls are
// accepted. The address is whatever the runtime reported, the zero address
// when it reported none.
func Create[T any](ctx context.Context, d *Dispatcher, gasLimit uint64, c call.ConstructorCall[T]) (types.AccountID, call.Output[T], error) {
	value := c.NativeValue()
	input, err := c.IntoInputData()
	if err != nil {
		return types.AccountID{}, call.Output[T]{}, err
	}

	fields := d.fields(input, value, gasLimit)
	d.metrics.IncCounter(metrics.CounterDispatch, d.labels())
	d.logger.Debug("instantiating contract", fields)

	start := time.Now()
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	addr, raw, rtErr := d.runtime.Instantiate(ctx, clients.InstantiateRequest{
		GasLimit: gasLimit,
		Value:    value,
		Input:    input,
	})
	out, err := decodeOutput(d, c.Decoder(), raw, rtErr, fields)
	d.metrics.ObserveLatency(metrics.LatencyCreate, time.Since(start), d.labels())
	return addr, out, err
}

// decodeOutput decodes raw even when the runtime failed. A runtime error is
// only returned when the output does not decode, joined with the decode
// failure.
func decodeOutput[T any](d *Dispatcher, dec call.OutputDecoder[T], raw []byte, rtErr error, fields map[string]any) (call.Output[T], error) {
	if rtErr != nil {
		d.metrics.IncCounter(metrics.CounterRuntimeError, d.labels())
		d.logger.Warn("runtime call failed", withField(fields, "error", rtErr))
	}

	out, err := dec.DecodeOutput(raw, d.decodeLimit)
	if err != nil {
		d.metrics.IncCounter(metrics.CounterDecodeFailure, d.labels())
		d.logger.Error("failed to decode contract output", withField(withField(fields, "output_size", len(raw)), "error", err))
		if rtErr != nil {
			return call.Output[T]{}, errors.Join(err, fmt.Errorf("runtime %s: %w", d.runtime.Name(), rtErr))
		}
		return call.Output[T]{}, err
	}

	if langErr, isErr := out.Err(); isErr {
		d.metrics.IncCounter(metrics.CounterLangError, d.labels())
		d.logger.Info("contract returned lang error", withField(fields, "lang_error", uint64(langErr)))
	}
	return out, nil
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout > 0 {
		return context.WithTimeout(ctx, d.timeout)
	}
	return context.WithCancel(ctx)
}

func (d *Dispatcher) labels() map[string]string {
	return map[string]string{metrics.LabelRuntime: d.runtime.Name()}
}

// fields never include the input itself.
func (d *Dispatcher) fields(input []byte, value types.Balance, gasLimit uint64) map[string]any {
	f := map[string]any{
		"runtime":    d.runtime.Name(),
		"input_size": len(input),
		"value":      uint32(value),
		"gas_limit":  gasLimit,
	}
	if sel, _, ok := call.SelectorOf(input); ok {
		f["selector"] = sel.String()
	}
	return f
}

func withField(fields map[string]any, k string, v any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for fk, fv := range fields {
		out[fk] = fv
	}
	out[k] = v
	return out
}

// Version information
const Version = "0.1.0"

// GetVersion returns version information
func GetVersion() map[string]any {
	return map[string]any{
		"library_version":      Version,
		"default_decode_limit": DefaultDecodeComplexityLimit,
		"supported_runtimes":   []string{types.RuntimeMemory.String(), types.RuntimeEVM.String()},
		"selector_derivations": []string{"blake2b-256", "keccak-256"},
	}
}
