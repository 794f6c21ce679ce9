package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gostorefront/internal/pkg/logger"
)

func TestZapLogger_WritesFieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	log.Info("catálogo carregado", map[string]interface{}{"total": 8})
	log.Error("falha no cache", errors.New("timeout"))

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "catálogo carregado", entries[0].Message)
	assert.Equal(t, int64(8), entries[0].ContextMap()["total"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "timeout", entries[1].ContextMap()["error"])
}

func TestZapLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core))

	log.Debug("ignorado", nil)
	log.Warn("registrado", nil)

	assert.Equal(t, 1, logs.Len())
}

func TestNewLogger_UnknownLevelDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.NewLogger("verbose").Debug("x", nil)
		logger.NewNop().Info("y", nil)
	})
}
