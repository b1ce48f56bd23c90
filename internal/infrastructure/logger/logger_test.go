package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tienda/internal/config"
)

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(config.LogConfig{Level: "verbose"})
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_WritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.log")

	log, err := New(config.LogConfig{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	ForService(log, "purchases").Error("ErrorAlConsultarCompras", zap.String("operation", "list"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"purchases"`)
	assert.Contains(t, string(data), `"timestamp"`)
	assert.Contains(t, string(data), "ErrorAlConsultarCompras")
}

func TestNew_ErrorEntriesReachErrorFile(t *testing.T) {
	dir := t.TempDir()
	combined := filepath.Join(dir, "combined.log")
	errorLog := filepath.Join(dir, "error.log")

	log, err := New(config.LogConfig{
		Level:            "info",
		OutputPaths:      []string{combined},
		ErrorOutputPaths: []string{errorLog},
	})
	require.NoError(t, err)

	log.Info("purchase committed", zap.Uint("purchaseId", 7))
	log.Error("purchase transaction failed", zap.String("operation", "lock product"))
	_ = log.Sync()

	all, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Contains(t, string(all), "purchase committed")
	assert.Contains(t, string(all), "purchase transaction failed")

	errs, err := os.ReadFile(errorLog)
	require.NoError(t, err)
	assert.Contains(t, string(errs), "purchase transaction failed")
	assert.Contains(t, string(errs), `"operation":"lock product"`)
	assert.NotContains(t, string(errs), "purchase committed")
}

func TestNew_ErrorFileRespectsConfiguredLevel(t *testing.T) {
	errorLog := filepath.Join(t.TempDir(), "error.log")

	log, err := New(config.LogConfig{
		Level:            "fatal",
		OutputPaths:      []string{filepath.Join(t.TempDir(), "combined.log")},
		ErrorOutputPaths: []string{errorLog},
	})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
	log.Error("dropped")
	_ = log.Sync()

	errs, err := os.ReadFile(errorLog)
	require.NoError(t, err)
	assert.Empty(t, errs)
}
