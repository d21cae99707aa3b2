package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(LogConfig{Level: LevelInfo, Format: format, OutputPaths: []string{"stdout"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_EmptyOutputPathsRejected(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNewDefaultAndDevelopmentLoggers(t *testing.T) {
	assert.NotNil(t, NewDefaultLogger())
	assert.NotNil(t, NewDevelopmentLogger())
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("child"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"Error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
	assert.True(t, ValidLevel("WARN"))
	assert.False(t, ValidLevel("trace"))
}

func TestZapLogger_FieldsAreTyped(t *testing.T) {
	l, logs := newObservedLogger(zapcore.DebugLevel)

	l.Info("converted",
		String("smiles", "CCO"),
		Int("atoms", 9),
		Int64("bytes", 1024),
		Float64("mw", 46.069),
		Bool("cached", false),
		Duration("took", 15*time.Millisecond),
		Err(errors.New("boom")),
		Any("tags", []string{"a"}),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "CCO", ctx["smiles"])
	assert.Equal(t, int64(9), ctx["atoms"])
	assert.Equal(t, 46.069, ctx["mw"])
	assert.Equal(t, false, ctx["cached"])
	assert.Equal(t, 15*time.Millisecond, ctx["took"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	l, logs := newObservedLogger(zapcore.WarnLevel)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "w", logs.All()[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, logs := newObservedLogger(zapcore.DebugLevel)

	child := l.Named("http").With(String("request_id", "r-1"))
	child.Info("handled")

	entry := logs.All()[0]
	assert.Equal(t, "http", entry.LoggerName)
	assert.Equal(t, "r-1", entry.ContextMap()["request_id"])
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	l := &zapLogger{z: zap.NewNop()}
	SetDefault(l)
	assert.Same(t, l, Default())

	SetDefault(nil)
	assert.Same(t, l, Default())
}

func TestContextPropagation(t *testing.T) {
	l, _ := newObservedLogger(zapcore.InfoLevel)
	fallback := NewNopLogger()

	ctx := WithContext(context.Background(), l)
	assert.Equal(t, l, FromContext(ctx, fallback))
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background(), nil))
}

//Personal.AI order the ending
