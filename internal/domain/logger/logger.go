package logger

import (
	"log/slog"
	"time"
)

// QueryLogger times a single store operation and logs how it ended.
type QueryLogger struct {
	Operation string
	Attrs     []any
	StartTime time.Time

	now func() time.Time
}

func NewQueryLogger(operation string, attrs ...any) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Attrs:     attrs,
		StartTime: time.Now(),
		now:       time.Now,
	}
}

// Done logs the outcome and hands err back, so callers can return through it.
// Successful operations log at debug level because the scheduler reads the
// store every tick.
func (l *QueryLogger) Done(err error, rows int) error {
	took := l.now().Sub(l.StartTime)
	attrs := append([]any{
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.Duration("took", took),
	}, l.Attrs...)

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return err
	}
	slog.Debug("Query executed", append(attrs, slog.Int("rows", rows))...)
	return nil
}
