// ABOUTME: Logger implementation backed by logrus with optional rotating file output
// ABOUTME: Provides leveled structured logging behind the Logger interface

package logrus

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger implements the Logger interface using logrus
type Logger struct {
	log *logrus.Logger
}

// Option configures a Logger
type Option func(*Logger)

// WithLevel sets the minimum level. Unknown level names fall back to
// info.
func WithLevel(level string) Option {
	return func(l *Logger) {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			parsed = logrus.InfoLevel
		}
		l.log.SetLevel(parsed)
	}
}

// WithFile sends output to a rotating log file instead of stderr
func WithFile(path string) Option {
	return func(l *Logger) {
		l.log.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
}

// WithOutput redirects output to an arbitrary writer
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.log.SetOutput(w)
	}
}

// NewLogger creates a logrus-backed logger
func NewLogger(opts ...Option) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	l := &Logger{log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
