// Package debug provides the leveled logger used throughout the host.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelTrace is for very chatty callback tracing.
	LogLevelTrace LogLevel = iota
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (case-insensitive) to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "off":
		return LogLevelOff, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l LogLevel) hclog() hclog.Level {
	switch l {
	case LogLevelTrace:
		return hclog.Trace
	case LogLevelDebug:
		return hclog.Debug
	case LogLevelInfo:
		return hclog.Info
	case LogLevelWarn:
		return hclog.Warn
	case LogLevelError:
		return hclog.Error
	default:
		return hclog.Off
	}
}

// Logger is a named, leveled logger. Messages are printf-formatted.
type Logger struct {
	hc hclog.Logger
}

// New creates a logger writing to output.
func New(output io.Writer, name string, level LogLevel) *Logger {
	return &Logger{
		hc: hclog.New(&hclog.LoggerOptions{
			Name:                     name,
			Level:                    level.hclog(),
			Output:                   output,
			IncludeLocation:          level <= LogLevelDebug,
			AdditionalLocationOffset: 1,
		}),
	}
}

// NewFileLogger creates a logger that appends to a file.
func NewFileLogger(filename, name string, level LogLevel) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(file, name, level), file, nil
}

// Named returns a sub-logger; names are joined with dots.
func (l *Logger) Named(name string) *Logger {
	return &Logger{hc: l.hc.Named(name)}
}

// SetLevel changes the minimum level of this logger and its sub-loggers.
func (l *Logger) SetLevel(level LogLevel) {
	l.hc.SetLevel(level.hclog())
}

// IsDebug reports whether debug messages are emitted.
func (l *Logger) IsDebug() bool {
	return l.hc.IsDebug()
}

// Trace logs a trace message.
func (l *Logger) Trace(format string, args ...any) {
	if l.hc.IsTrace() {
		l.hc.Trace(fmt.Sprintf(format, args...))
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	if l.hc.IsDebug() {
		l.hc.Debug(fmt.Sprintf(format, args...))
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.hc.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.hc.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.hc.Error(fmt.Sprintf(format, args...))
}

// defaultLogger is the global logger instance.
var defaultLogger = New(os.Stderr, "editorhost", LogLevelInfo)

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the default logger. Loggers obtained from Named before
// the call keep writing to the previous destination.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...any) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...any) {
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...any) {
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...any) {
	defaultLogger.Error(format, args...)
}

// DebugIf logs a debug message if the condition is true.
func DebugIf(condition bool, format string, args ...any) {
	if condition {
		defaultLogger.Debug(format, args...)
	}
}
