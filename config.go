package inkcall

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vitwit/inkcall/clients"
	"github.com/vitwit/inkcall/types"
	"github.com/vitwit/inkcall/utils"
)

// DefaultCaller is the account used by the in-memory runtime when the config
// names none.
var DefaultCaller = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

const DefaultGasLimit uint64 = 5_000_000

// DefaultConfig returns a config for the in-memory runtime with the default
// decode limit, no timeout, no logging and no metrics.
func DefaultConfig() *types.Config {
	return &types.Config{
		DecodeComplexityLimit: DefaultDecodeComplexityLimit,
		DefaultGasLimit:       DefaultGasLimit,
		Runtime: types.RuntimeConfig{
			Kind: types.RuntimeMemory,
		},
	}
}

// LoadConfig reads a TOML config file, or a JSON one when path ends in
// ".json". Keys missing from the file keep their DefaultConfig values.
func LoadConfig(path string) (*types.Config, error) {
	cfg := DefaultConfig()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &types.Error{
				Code:    types.ErrInvalidConfig,
				Message: fmt.Sprintf("failed to read config %s: %v", path, err),
			}
		}
		return utils.ParseConfig(data, cfg)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, &types.Error{
			Code:    types.ErrInvalidConfig,
			Message: fmt.Sprintf("failed to parse config %s: %v", path, err),
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &types.Error{
			Code:    types.ErrInvalidConfig,
			Message: fmt.Sprintf("unknown config keys in %s: %v", path, undecoded),
		}
	}

	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRuntime creates the runtime selected by rc.
func NewRuntime(rc types.RuntimeConfig) (clients.Runtime, error) {
	caller := DefaultCaller
	if rc.Caller != "" {
		id, err := utils.ParseAccountID(rc.Caller)
		if err != nil {
			return nil, err
		}
		caller = id
	}

	switch rc.Kind {
	case types.RuntimeMemory:
		return clients.NewMemoryRuntime(caller), nil
	case types.RuntimeEVM:
		rt, err := clients.NewEVMRuntime(rc.RPCUrl, caller)
		if err != nil {
			return nil, fmt.Errorf("failed to create EVM runtime for %s: %w", rc.RPCUrl, err)
		}
		return rt, nil
	default:
		return nil, &types.Error{
			Code:    types.ErrUnsupportedRuntime,
			Message: fmt.Sprintf("unsupported runtime: %s", rc.Kind),
		}
	}
}
