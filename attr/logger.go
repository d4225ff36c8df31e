package attr

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the attr package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the attr package's logger.
// This must be called before any decode operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

// debugf logs decode diagnostics. Free with the default no-op logger.
func debugf(format string, args ...any) {
	Logger().Sugar().Debugf(format, args...)
}
