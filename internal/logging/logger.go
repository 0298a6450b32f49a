// Package logging provides structured logging for the wlancore driver core.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents the available log levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Output io.Writer
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger wraps a zerolog.Logger with the leveled key-value/printf surface
// the rest of this module is written against.
type Logger struct {
	zl    zerolog.Logger
	level LogLevel
	mu    sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// NewLogger creates a new logger.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	zl := zerolog.New(output).With().Timestamp().Logger().Level(config.Level.zerolog())
	return &Logger{zl: zl, level: config.Level}
}

// Default returns the default logger, creating it if necessary.
func Default() *Logger {
	defaultMu.RLock()
	if defaultLogger != nil {
		defer defaultMu.RUnlock()
		return defaultLogger
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

func (l *Logger) event(level LogLevel) *zerolog.Event {
	switch level {
	case LevelDebug:
		return l.zl.Debug()
	case LevelWarn:
		return l.zl.Warn()
	case LevelError:
		return l.zl.Error()
	default:
		return l.zl.Info()
	}
}

// withArgs attaches key-value pairs (as passed to Debug/Info/Warn/Error) to
// an in-flight zerolog event. Odd-length arg lists drop their trailing key.
func withArgs(ev *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, args[i+1])
	}
	return ev
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	withArgs(l.event(level), args).Msg(msg)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

// Printf-style logging.
func (l *Logger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.event(LevelDebug).Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.event(LevelInfo).Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.event(LevelWarn).Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.event(LevelError).Msgf(format, args...)
}

// Printf for compatibility with code that only knows about a plain printf logger.
func (l *Logger) Printf(format string, args ...any) {
	l.Infof(format, args...)
}

// WithInterface returns a logger that tags every event with the owning
// interface's bss index.
func (l *Logger) WithInterface(bssIndex int) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{zl: l.zl.With().Int("bss_index", bssIndex).Logger(), level: l.level}
}

// WithRequest returns a logger that tags every event with a request's
// correlation id and firmware operation name.
func (l *Logger) WithRequest(id any, op string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{zl: l.zl.With().Interface("request_id", id).Str("op", op).Logger(), level: l.level}
}

// WithError returns a logger that tags every event with an error value.
func (l *Logger) WithError(err error) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{zl: l.zl.With().Err(err).Logger(), level: l.level}
}

// Global convenience functions.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { Default().Warn(msg, args...) }
func Error(msg string, args ...any) { Default().Error(msg, args...) }
