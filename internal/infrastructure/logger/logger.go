package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tienda/internal/config"
)

// New builds a JSON logger with two sinks: every entry at the configured
// level goes to OutputPaths and entries at Error or above are also written
// to ErrorOutputPaths, together with zap's own internal errors.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}
	errorPaths := cfg.ErrorOutputPaths
	if len(errorPaths) == 0 {
		errorPaths = []string{"stderr"}
	}

	out, closeOut, err := zap.Open(outputPaths...)
	if err != nil {
		return nil, fmt.Errorf("opening log output: %w", err)
	}
	errOut, _, err := zap.Open(errorPaths...)
	if err != nil {
		closeOut()
		return nil, fmt.Errorf("opening error log output: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	atLevel := zap.NewAtomicLevelAt(lvl)
	errorsOnly := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel && atLevel.Enabled(l)
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), out, atLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), errOut, errorsOnly),
	)

	return zap.New(core,
		zap.ErrorOutput(errOut),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// ForService tags every entry with the service that produced it.
func ForService(base *zap.Logger, service string) *zap.Logger {
	return base.With(zap.String("service", service))
}
