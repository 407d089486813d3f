package code

import (
	"fmt"
	"log/slog"
)

// Logger is an optional interface for observability during code execution.
// Implementations can log timing information and other events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort; Logf should not panic.
// - Ownership: format/args are read-only.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...any)
}

// SlogLogger adapts a *slog.Logger to Logger. Messages are logged at debug
// level. A nil logger uses slog.Default().
func SlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Logf(format string, args ...any) {
	s.l.Debug("sandbox: " + fmt.Sprintf(format, args...))
}
