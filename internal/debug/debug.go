package debug

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Debugging enables a development logger at
// debug level, otherwise a production logger at info level is used.
func New(enabled bool) (*zap.Logger, error) {
	if enabled {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// OrNop returns logger, or a no-op logger when it is nil
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Timing logs the start of an operation and returns a func that logs its
// completion and duration at debug level
func Timing(logger *zap.Logger, operation string) func() {
	logger = OrNop(logger)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return func() {}
	}

	start := time.Now()
	logger.Debug("starting", zap.String("operation", operation))

	return func() {
		logger.Debug("completed",
			zap.String("operation", operation),
			zap.Duration("took", time.Since(start)))
	}
}
