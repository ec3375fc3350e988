package utils

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/inkcall/types"
)

func TestParseHexInput(t *testing.T) {
	b, err := ParseHexInput("0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	b, err = ParseHexInput(" baadf00d00 ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xba, 0xad, 0xf0, 0x0d, 0x00}, b)

	b, err = ParseHexInput("0x")
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = ParseHexInput("0xabc")
	var typed *types.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, types.ErrInvalidInput, typed.Code)
}

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), id)

	_, err = ParseAccountID("alice")
	require.Error(t, err)
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		want     types.Balance
		wantErr  bool
	}{
		{"9000", 0, 9000, false},
		{"1.5", 2, 150, false},
		{"0.001", 3, 1, false},
		{"0.0001", 3, 0, true},
		{"-1", 0, 0, true},
		{"4294967296", 0, 0, true},
		{"abc", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := ParseBalance(tt.amount, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "1.50", FormatBalance(150, 2))
	assert.Equal(t, "9000", FormatBalance(9000, 0))
}

func TestValidateConfig(t *testing.T) {
	cfg := &types.Config{
		DecodeComplexityLimit: 255,
		DefaultGasLimit:       1,
		LogLevel:              "info",
		Runtime:               types.RuntimeConfig{Kind: types.RuntimeMemory},
	}
	require.NoError(t, ValidateConfig(cfg))

	cfg.Runtime.Kind = types.RuntimeEVM
	err := ValidateConfig(cfg)
	var typed *types.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, types.ErrInvalidConfig, typed.Code)

	cfg.Runtime.RPCUrl = "http://127.0.0.1:8545"
	require.NoError(t, ValidateConfig(cfg))

	cfg.Runtime.Caller = "bob"
	require.Error(t, ValidateConfig(cfg))
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"decodeComplexityLimit":16,"defaultGasLimit":500,"timeout":"2s","runtime":{"kind":"memory"}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), cfg.DecodeComplexityLimit)
	assert.Equal(t, "2s", cfg.Timeout.Std().String())

	_, err = ParseConfig([]byte(`{"decodeComplexityLimit":0,"defaultGasLimit":500,"runtime":{"kind":"memory"}}`), nil)
	require.Error(t, err)

	_, err = ParseConfig([]byte(`{"decodeLimit":3}`), nil)
	require.Error(t, err)
}

func TestParseConfigKeepsBase(t *testing.T) {
	base := &types.Config{
		DecodeComplexityLimit: 255,
		DefaultGasLimit:       1000,
		Runtime:               types.RuntimeConfig{Kind: types.RuntimeMemory},
	}

	cfg, err := ParseConfig([]byte(`{"logLevel":"info"}`), base)
	require.NoError(t, err)
	assert.Equal(t, uint32(255), cfg.DecodeComplexityLimit)
	assert.Equal(t, uint64(1000), cfg.DefaultGasLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, base.LogLevel)
}

func TestSelectorTag(t *testing.T) {
	type entry struct {
		Selector string `validate:"selector"`
	}
	require.NoError(t, ValidateStruct(entry{Selector: "0xdeadbeef"}))
	require.Error(t, ValidateStruct(entry{Selector: "0xdead"}))
	require.Error(t, ValidateStruct(entry{Selector: "deadbeef"}))
}
