package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeComponent LogType = "UI"
	TypeDB        LogType = "DB"
	TypeEvent     LogType = "EVT"
	TypeSystem    LogType = "SYS"
	TypeError     LogType = "ERR"
)

// Options configures the console handler and its optional plain-text file sink.
type Options struct {
	Level     slog.Leveler
	AddSource bool
	Console   io.Writer
	File      io.Writer
}

type output struct {
	mu      sync.Mutex
	console io.Writer
	file    io.Writer
}

type CustomHandler struct {
	opts   Options
	out    *output
	attrs  []slog.Attr
	groups []string
	now    func() time.Time
}

func NewHandler(opts Options) *CustomHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	return &CustomHandler{
		opts: opts,
		out:  &output{console: console, file: opts.File},
		now:  time.Now,
	}
}

// OpenFile opens the event log for appending, creating its directory.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)
	return &c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	levelColor, levelText := levelStyle(r.Level)
	logType := getLogType(h.attrs, &r)
	message := formatMessage(&r, h.opts.AddSource)
	attrsStr := formatAttrs(h.groups, h.attrs, &r)
	ts := h.now()

	h.out.mu.Lock()
	defer h.out.mu.Unlock()

	_, err := fmt.Fprintf(h.out.console, "%s[Hearth] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		ts.Format("15:04:05"),
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		attrsStr,
		colorReset,
	)
	if h.out.file != nil {
		if _, ferr := fmt.Fprintf(h.out.file, "%s %s [%s] %s%s\n",
			ts.Format(time.RFC3339),
			levelText,
			logType,
			message,
			attrsStr,
		); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func formatMessage(r *slog.Record, addSource bool) string {
	message := r.Message
	values := recordValues(r)

	if r.Level >= slog.LevelError {
		location := values["error_location"]
		if location == "" && addSource && r.PC != 0 {
			frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
			if frame.File != "" {
				location = fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
			}
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := values["error"]; details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}

	if name, user := values["name"], values["user_name"]; name != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, name, user)
	}
	if status := values["status"]; status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took := values["took"]; took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}
	return message
}

func recordValues(r *slog.Record) map[string]string {
	values := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		values[a.Key] = a.Value.String()
		return true
	})
	return values
}

func formatAttrs(groups []string, handlerAttrs []slog.Attr, r *slog.Record) string {
	prefix := ""
	if len(groups) > 0 {
		prefix = strings.Join(groups, ".") + "."
	}

	var b strings.Builder
	write := func(a slog.Attr) {
		if isInternalAttr(a.Key) {
			return
		}
		fmt.Fprintf(&b, " %s%s=%v", prefix, a.Key, a.Value)
	}
	for _, a := range handlerAttrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	return b.String()
}

func shouldSkipLog(r *slog.Record) bool {
	skippedMessages := []string{
		"locking buckets",
		"unlocking buckets",
		"gateway event",
		"cleaning up bucket",
		"cleaned up rate limit buckets",
		"binary message received",
		"received gateway message",
		"locking gateway rate limiter",
		"unlocking gateway rate limiter",
		"sending gateway command",
		"new request",
		"new response",
		"locking rest bucket",
		"unlocking rest bucket",
		"rate limit response headers",
		"sending heartbeat",
		"sending voice heartbeat",
		"received voice gateway message",
	}

	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func getLogType(handlerAttrs []slog.Attr, r *slog.Record) LogType {
	value := ""
	for _, a := range handlerAttrs {
		if a.Key == "type" {
			value = a.Value.String()
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "type" {
			value = a.Value.String()
			return false
		}
		return true
	})

	switch value {
	case "cmd":
		return TypeCommand
	case "component":
		return TypeComponent
	case "db":
		return TypeDB
	case "event":
		return TypeEvent
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status", "error", "error_location", "took":
		return true
	}
	return false
}
