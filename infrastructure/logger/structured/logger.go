// ABOUTME: Structured logger implementation built on logrus
// ABOUTME: Writes JSON or text logs with size-based file rotation

package structured

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures log output
type Options struct {
	// Level is the minimum level to emit: debug, info, warn, or error.
	// Unrecognized values fall back to info.
	Level string

	// Format selects json or text output. JSON is the default.
	Format string

	// File, when set, mirrors log output into a size-rotated file
	// alongside stdout.
	File string
}

// StructuredLogger implements the Logger interface using logrus
type StructuredLogger struct {
	log *logrus.Logger
}

// NewStructuredLogger creates a logger with the given options
func NewStructuredLogger(opts Options) *StructuredLogger {
	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(opts.Format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}

	return &StructuredLogger{log: log}
}

// NewNopLogger creates a logger that discards everything. Used by tests
// and by the CLI's quiet mode.
func NewNopLogger() *StructuredLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &StructuredLogger{log: log}
}

// Debug logs a debug message
func (l *StructuredLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *StructuredLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *StructuredLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *StructuredLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
