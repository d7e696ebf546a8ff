package zaplogger_test

import (
	"errors"
	"testing"

	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zaplogger.New(zap.New(core), observability.F("service", "customer-events"))

	l.With(observability.F("component", "test")).Warn("something_odd",
		observability.F("attempt", 2),
		observability.F("error", errors.New("boom")),
	)
	l.Debug("debug_line")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "customer-events", fields["service"])
	assert.Equal(t, "test", fields["component"])
	assert.EqualValues(t, 2, fields["attempt"])
	assert.Equal(t, "boom", fields["error"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "component")
}

func TestLogger_NilBaseIsNop(t *testing.T) {
	l := zaplogger.New(nil)
	assert.NotPanics(t, func() {
		l.Info("ignored")
		_ = l.Sync()
	})
}
