package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the logging level
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config string (debug, info, warn, error, fatal) to a LogLevel
func ParseLevel(raw string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", raw)
	}
}

// Output formats accepted by SetFormat
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	defaultsMu   sync.RWMutex
	defaultLevel = INFO
	defaultOut   io.Writer = consoleWriter(os.Stdout)
)

func consoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// SetDefaultLevel sets the level applied to loggers created afterwards
func SetDefaultLevel(level LogLevel) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLevel = level
}

// SetFormat selects console or JSON rendering for loggers created afterwards
func SetFormat(format string) error {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	switch format {
	case "", FormatConsole:
		defaultOut = consoleWriter(os.Stdout)
	case FormatJSON:
		defaultOut = os.Stdout
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// Logger is a component logger with its own level, rendered through zerolog
type Logger struct {
	mu     sync.RWMutex
	level  LogLevel
	prefix string
	logger zerolog.Logger
}

// NewLogger creates a new Logger instance using the process default level and format
func NewLogger(prefix string) *Logger {
	defaultsMu.RLock()
	level, out := defaultLevel, defaultOut
	defaultsMu.RUnlock()

	return &Logger{
		level:  level,
		prefix: prefix,
		logger: newZerolog(out, prefix),
	}
}

func newZerolog(out io.Writer, prefix string) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("component", prefix).Logger()
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// GetPrefix returns the component name attached to every entry
func (l *Logger) GetPrefix() string {
	return l.prefix
}

// log is the internal logging method
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.RLock()
	threshold, zl := l.level, l.logger
	l.mu.RUnlock()

	if level < threshold {
		return
	}

	var ev *zerolog.Event
	switch level {
	case DEBUG:
		ev = zl.Debug()
	case INFO:
		ev = zl.Info()
	case WARN:
		ev = zl.Warn()
	case ERROR:
		ev = zl.Error()
	default:
		// WithLevel does not exit, so the stack can still be written below
		ev = zl.WithLevel(zerolog.FatalLevel)
	}
	ev.Msgf(format, args...)

	if level == FATAL {
		zl.WithLevel(zerolog.FatalLevel).Msg(string(debug.Stack()))
		os.Exit(1)
	}
}

// Debugf logs a debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Infof logs an info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warnf logs a warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Errorf logs an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Fatalf logs a fatal message and exits the program
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}
