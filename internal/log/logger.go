package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"look/internal/errors"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger()

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus entry so fields can be chained without mutating the
// parent logger.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.entry.Logger.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithLevel sets the minimum level by name (trace, debug, info, warn, error).
// Unknown names leave the level unchanged.
func WithLevel(level string) Option {
	return func(l *Logger) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			l.entry.Logger.SetLevel(lvl)
		}
	}
}

// WithFile appends log lines to the named file instead of stderr. If the file
// cannot be opened the logger keeps its current output.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", path, err)
			return
		}
		l.file = f
		l.entry.Logger.SetOutput(f)
	}
}

// NewLogger creates a text logger writing to stderr at info level.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{entry: logrus.NewEntry(base)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError attaches err and, for application errors, its kind and subject.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l *Logger) Info(msg string) { l.entry.Info(msg) }

func (l *Logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *Logger) Warn(msg string) { l.entry.Warn(msg) }

func (l *Logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *Logger) Error(msg string) { l.entry.Error(msg) }

func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{F("error", err.Error())}

	// The outermost application error describes the failure best.
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch typed := e.(type) {
		case *errors.FileError:
			return append(fields, F("error_kind", int(typed.Kind())), F("path", typed.Path()))
		case *errors.ConfigError:
			return append(fields, F("error_kind", int(typed.Kind())), F("param", typed.Param()))
		case *errors.CommandError:
			return append(fields, F("error_kind", int(typed.Kind())), F("command", typed.Name()))
		case *errors.UsageError:
			return append(fields, F("error_kind", int(typed.Kind())))
		case *errors.ApplicationError:
			return append(fields, F("error_kind", int(typed.Kind())))
		}
	}
	return fields
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the package logger.
func Default() *Logger {
	return logger
}

// SetDebug toggles debug output on the package logger.
func SetDebug(debug bool) {
	if debug {
		logger.entry.Logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.entry.Logger.SetLevel(logrus.InfoLevel)
}

// IsDebug reports whether the package logger emits debug lines.
func IsDebug() bool {
	return logger.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}

// ParseLevel reports whether name is a level the logger understands.
func ParseLevel(name string) error {
	_, err := logrus.ParseLevel(strings.TrimSpace(name))
	return err
}

func Info(msg string) { logger.Info(msg) }

func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

func Debug(msg string) { logger.Debug(msg) }

func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

func Warn(msg string) { logger.Warn(msg) }

func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

func Error(msg string) { logger.Error(msg) }

func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err's details attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}
