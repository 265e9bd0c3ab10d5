package logging

import (
	"io"
	"log/slog"
)

// NewStructuredLogger creates a slog.Logger writing text-formatted records
// to the given writer at the given minimum level.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LogError logs an error with a message plus optional key/value context,
// tolerating a nil logger.
func LogError(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error(msg, append([]any{slog.String("error", err.Error())}, args...)...)
}

// SafeClose closes the closer and logs a warning on failure. Used in defers
// where the close error cannot change the outcome.
func SafeClose(c io.Closer, logger *slog.Logger, name string) {
	if err := c.Close(); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("error closing resource", slog.String("resource", name), slog.String("error", err.Error()))
	}
}
