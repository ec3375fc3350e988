package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLangErrorMessage(t *testing.T) {
	assert.Equal(t, "lang error: could not read input", LangErrorCouldNotReadInput.Error())
	assert.Equal(t, "lang error: code 7", LangError(7).Error())
}

func TestBalanceDecimal(t *testing.T) {
	assert.Equal(t, "90.00", Balance(9000).Decimal(2).StringFixed(2))
}

func TestDurationText(t *testing.T) {
	var d Duration
	assert.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, "1m30s", d.Std().String())
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestRuntimeKind(t *testing.T) {
	assert.True(t, RuntimeMemory.IsSupported())
	assert.True(t, RuntimeEVM.IsSupported())
	assert.False(t, RuntimeKind("wasm").IsSupported())
}
