package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel represents logging levels
type LogLevel int

const (
	// OffLevel turns off logging
	OffLevel LogLevel = iota
	// FatalLevel level. Logs and then calls `logger.Exit(1)`. Highest level of severity.
	FatalLevel
	// ErrorLevel level. Used for errors that should definitely be noted.
	ErrorLevel
	// WarnLevel level. Non-critical entries that deserve eyes.
	WarnLevel
	// InfoLevel level. General operational entries about what's happening inside the application.
	InfoLevel
	// DebugLevel level. Usually only enabled when debugging.
	DebugLevel
	// TraceLevel level. Designates finer-grained informational events than the Debug.
	TraceLevel
)

func (l LogLevel) String() string {
	switch l {
	case OffLevel:
		return "off"
	case FatalLevel:
		return "fatal"
	case ErrorLevel:
		return "error"
	case WarnLevel:
		return "warn"
	case InfoLevel:
		return "info"
	case DebugLevel:
		return "debug"
	case TraceLevel:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "off":
		return OffLevel
	case "fatal":
		return FatalLevel
	case "error":
		return ErrorLevel
	case "warn", "warning":
		return WarnLevel
	case "info":
		return InfoLevel
	case "debug":
		return DebugLevel
	case "trace":
		return TraceLevel
	default:
		return InfoLevel
	}
}

// Logger interface defines the logging contract
type Logger interface {
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Trace(args ...interface{})
	Tracef(template string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithContext(ctx context.Context) Logger
}

// DefaultLogger is the default logger implementation using logrus
type DefaultLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
	level  LogLevel
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	logger := logrus.New()

	switch level {
	case OffLevel:
		logger.SetLevel(logrus.PanicLevel + 1) // Disable all logging
	case FatalLevel:
		logger.SetLevel(logrus.FatalLevel)
	case ErrorLevel:
		logger.SetLevel(logrus.ErrorLevel)
	case WarnLevel:
		logger.SetLevel(logrus.WarnLevel)
	case InfoLevel:
		logger.SetLevel(logrus.InfoLevel)
	case DebugLevel:
		logger.SetLevel(logrus.DebugLevel)
	case TraceLevel:
		logger.SetLevel(logrus.TraceLevel)
	}

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z",
	})

	logger.SetOutput(os.Stdout)

	return &DefaultLogger{
		logger: logger,
		entry:  logrus.NewEntry(logger),
		level:  level,
	}
}

func (l *DefaultLogger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l *DefaultLogger) Fatalf(template string, args ...interface{}) {
	l.entry.Fatalf(template, args...)
}

func (l *DefaultLogger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *DefaultLogger) Errorf(template string, args ...interface{}) {
	l.entry.Errorf(template, args...)
}

func (l *DefaultLogger) Warn(args ...interface{}) { l.entry.Warn(args...) }

func (l *DefaultLogger) Warnf(template string, args ...interface{}) {
	l.entry.Warnf(template, args...)
}

func (l *DefaultLogger) Info(args ...interface{}) { l.entry.Info(args...) }

func (l *DefaultLogger) Infof(template string, args ...interface{}) {
	l.entry.Infof(template, args...)
}

func (l *DefaultLogger) Debug(args ...interface{}) { l.entry.Debug(args...) }

func (l *DefaultLogger) Debugf(template string, args ...interface{}) {
	l.entry.Debugf(template, args...)
}

func (l *DefaultLogger) Trace(args ...interface{}) { l.entry.Trace(args...) }

func (l *DefaultLogger) Tracef(template string, args ...interface{}) {
	l.entry.Tracef(template, args...)
}

func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return &DefaultLogger{
		logger: l.logger,
		entry:  l.entry.WithField(key, value),
		level:  l.level,
	}
}

func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	return &DefaultLogger{
		logger: l.logger,
		entry:  l.entry.WithFields(fields),
		level:  l.level,
	}
}

func (l *DefaultLogger) WithContext(ctx context.Context) Logger {
	return &DefaultLogger{
		logger: l.logger,
		entry:  l.entry.WithContext(ctx),
		level:  l.level,
	}
}

// Global logger instance
var defaultLogger Logger = NewDefaultLogger(InfoLevel)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the global default logger
func GetDefaultLogger() Logger {
	return defaultLogger
}
