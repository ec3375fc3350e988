package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerFrom(zap.New(core))

	log.Warn("runtime call failed", map[string]any{
		"runtime":  "memory",
		"selector": "0xdeadbeef",
		"error":    errors.New("boom"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "runtime call failed", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "memory", ctx["runtime"])
	assert.Equal(t, "0xdeadbeef", ctx["selector"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZapLoggerLevelFilter(t *testing.T) {
	core, logs := observer.New(ParseLevel("warn"))
	log := NewZapLoggerFrom(zap.New(core))

	log.Debug("dropped", nil)
	log.Info("dropped", nil)
	log.Error("kept", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNoopLoggerSatisfiesInterface(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Info("ignored", map[string]any{"k": 1})
	_ = NewZapLogger("debug")
}
