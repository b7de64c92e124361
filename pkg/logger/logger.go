// Package logger provides structured logging for the gradebook on top of
// log/slog. Call sites pass typed fields (StudentID, Average, Err, ...) so
// every record uses the same keys. The interactive menu owns stdout, so the
// default output is stderr.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// Level is the severity of a record.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError

	// levelOff is above every level that is ever written.
	levelOff = slog.Level(1 << 10)
)

// ParseLevel parses a level name. Unknown names mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none":
		return levelOff
	default:
		return LevelInfo
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// FIELDS
// ══════════════════════════════════════════════════════════════════════════════

// Field is a key-value pair attached to a record.
type Field = slog.Attr

func String(key, value string) Field          { return slog.String(key, value) }
func Int(key string, value int) Field         { return slog.Int(key, value) }
func Float64(key string, value float64) Field { return slog.Float64(key, value) }

// Duration renders d in Go notation ("1.5s") rather than nanoseconds.
func Duration(key string, d time.Duration) Field { return slog.String(key, d.String()) }

// Err records the error message under "error".
func Err(err error) Field {
	if err == nil {
		return slog.Any("error", nil)
	}
	return slog.String("error", err.Error())
}

// SessionIDKey is the field key for the roster session.
const SessionIDKey = "session_id"

// Gradebook fields.
func StudentID(id string) Field     { return String("student_id", id) }
func StudentName(name string) Field { return String("student_name", name) }
func Average(avg float64) Field     { return Float64("average", avg) }
func GradeLabel(grade string) Field { return String("grade", grade) }
func RosterSize(n int) Field        { return Int("roster_size", n) }
func Store(name string) Field       { return String("store", name) }
func Component(name string) Field   { return String("component", name) }
func Operation(name string) Field   { return String("operation", name) }
func Latency(d time.Duration) Field { return Duration("latency", d) }

// ══════════════════════════════════════════════════════════════════════════════
// LOGGER
// ══════════════════════════════════════════════════════════════════════════════

// Options configures a Logger.
type Options struct {
	// Output defaults to stderr.
	Output io.Writer

	// Level is the minimum level written.
	Level Level

	// Format is "json" (default) or "text".
	Format string

	// AddCaller adds the source file and line of the log call.
	AddCaller bool
}

// OutputFor maps a configured output name to a writer.
// Unknown names fall back to stderr.
func OutputFor(name string) io.Writer {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stdout":
		return os.Stdout
	case "discard", "none", "off":
		return io.Discard
	default:
		return os.Stderr
	}
}

// Logger writes structured records through a slog.Handler.
type Logger struct {
	handler slog.Handler
}

// New creates a Logger.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level, AddSource: opts.AddCaller}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	return &Logger{handler: handler}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(Options{Output: io.Discard, Level: levelOff})
}

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l.handler.Enabled(context.Background(), level)
}

// With returns a Logger that adds fields to every record.
func (l *Logger) With(fields ...Field) *Logger {
	if len(fields) == 0 {
		return l
	}
	return &Logger{handler: l.handler.WithAttrs(fields)}
}

// WithSessionID returns a logger with the session ID field added.
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return l.With(String(SessionIDKey, sessionID))
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

// log builds the record itself so the source points at the caller of
// Debug/Info/Warn/Error rather than at this package.
func (l *Logger) log(level Level, msg string, fields []Field) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	record := slog.NewRecord(time.Now(), level, msg, pcs[0])
	record.AddAttrs(fields...)
	_ = l.handler.Handle(ctx, record)
}
