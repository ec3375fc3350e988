package types

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Balance is the native value moved with a call, in the smallest unit.
// It is a u32 on the wire.
type Balance uint32

// Decimal renders b with the given number of fractional digits.
func (b Balance) Decimal(decimals int32) decimal.Decimal {
	return decimal.New(int64(b), -decimals)
}

// AccountID identifies a contract instance or caller. It is written as 20 raw
// bytes.
type AccountID = common.Address

// LangError is a failure reported by the contract language layer rather than
// by the called function itself. It is a u64 on the wire.
type LangError uint64

const (
	// LangErrorCouldNotReadInput is returned when the input does not start
	// with a known selector or its arguments fail to decode.
	LangErrorCouldNotReadInput LangError = 0

	// LangErrorTrapped is returned by the in-memory runtime when a handler
	// fails with an error that is not a LangError.
	LangErrorTrapped LangError = 1
)

func (e LangError) Error() string {
	switch e {
	case LangErrorCouldNotReadInput:
		return "lang error: could not read input"
	case LangErrorTrapped:
		return "lang error: contract trapped"
	default:
		return fmt.Sprintf("lang error: code %d", uint64(e))
	}
}

// Config contains global configuration for the dispatcher.
type Config struct {
	// Nesting budget for bounded output decoding.
	DecodeComplexityLimit uint32 `json:"decodeComplexityLimit" toml:"decode_complexity_limit" validate:"gte=1"`

	// Gas limit used by callers that do not pick one.
	DefaultGasLimit uint64 `json:"defaultGasLimit" toml:"default_gas_limit" validate:"gt=0"`

	// Upper bound applied to each runtime call. Zero means no timeout.
	Timeout Duration `json:"timeout,omitempty" toml:"timeout" validate:"gte=0"`

	LogLevel      string `json:"logLevel,omitempty" toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics bool   `json:"enableMetrics,omitempty" toml:"enable_metrics"`

	Runtime RuntimeConfig `json:"runtime" toml:"runtime"`
}

// RuntimeConfig selects and configures the execution runtime.
type RuntimeConfig struct {
	Kind   RuntimeKind `json:"kind" toml:"kind" validate:"required,oneof=memory evm"`
	RPCUrl string      `json:"rpcUrl,omitempty" toml:"rpc_url" validate:"required_if=Kind evm,omitempty,url"`

	// Account used as caller for calls and instantiations.
	Caller string `json:"caller,omitempty" toml:"caller" validate:"omitempty,eth_addr"`
}

// Duration is a time.Duration that reads from strings such as "5s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Error types
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrInvalidConfig      = "INVALID_CONFIG"
	ErrUnsupportedRuntime = "UNSUPPORTED_RUNTIME"
	ErrInvalidInput       = "INVALID_INPUT"
)
