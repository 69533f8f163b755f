package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// slogLevelTrace sits below slog.LevelDebug so that -vvv shows more than -vv.
const slogLevelTrace = slog.Level(-8)

// slogLevelOff is above every level we ever emit.
const slogLevelOff = slog.Level(16)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelTrace:
		return slogLevelTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelOff:
		return slogLevelOff
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// ParseLevel converts a textual level ("off", "info", "trace", ...) into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelOff, fmt.Errorf("unknown log level %q", s)
	}
}

// LevelFromVerbosity maps the number of -v flags to a level. Without any -v
// flag the fallback string (usually the CERDITO_LOGLEVEL variable) decides,
// and logging stays off when it is empty or unparsable.
func LevelFromVerbosity(count int, fallback string) LogLevel {
	switch {
	case count <= 0:
		level, err := ParseLevel(fallback)
		if err != nil {
			return LevelOff
		}
		return level
	case count == 1:
		return LevelInfo
	case count == 2:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// Logger is a structured logger handle. It is passed explicitly to every
// component that logs, so nothing depends on process-wide logging state.
// A nil *Logger discards everything.
type Logger struct {
	slogger *slog.Logger
	level   LogLevel
}

// New creates a Logger writing text records at or above level to output.
func New(level LogLevel, output io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: level.SlogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogLevelTrace {
					return slog.String(slog.LevelKey, "TRACE")
				}
			}
			return a
		},
	}
	return &Logger{
		slogger: slog.New(slog.NewTextHandler(output, opts)),
		level:   level,
	}
}

// Discard returns a Logger that drops every record.
func Discard() *Logger {
	return New(LevelOff, io.Discard)
}

// Level returns the level the logger was created with.
func (l *Logger) Level() LogLevel {
	if l == nil {
		return LevelOff
	}
	return l.level
}

func (l *Logger) logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if l == nil || l.slogger == nil {
		return
	}
	ctx := context.Background()
	if !l.slogger.Enabled(ctx, level.SlogLevel()) {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	slogAttrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		slogAttrs = append(slogAttrs, slog.String("error", err.Error()))
	}

	l.slogger.LogAttrs(ctx, level.SlogLevel(), msg, slogAttrs...)
}

// Trace logs a trace message.
func (l *Logger) Trace(subsystem string, messageFmt string, args ...interface{}) {
	l.logInternal(LevelTrace, subsystem, nil, messageFmt, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(subsystem string, messageFmt string, args ...interface{}) {
	l.logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func (l *Logger) Info(subsystem string, messageFmt string, args ...interface{}) {
	l.logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(subsystem string, messageFmt string, args ...interface{}) {
	l.logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func (l *Logger) Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	l.logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// Mask hides a secret for debug output, keeping only its length visible.
func Mask(secret *string) string {
	if secret == nil {
		return "<unset>"
	}
	return strings.Repeat("*", len(*secret))
}
