// Package logger configures the process-wide logrus instance. The TUI
// owns the terminal, so output goes to a file (or is discarded) rather
// than stdout.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance.
var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetOutput(io.Discard)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLevel sets the logging level from its string name.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)
}

// SetFile directs output to the given file, creating parent directories
// as needed. An empty path keeps logging disabled.
func SetFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	Logger.SetOutput(f)
	return nil
}

// WithField adds a field to the logger.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithError adds an error field to the logger.
func WithError(err error) *logrus.Entry {
	return Logger.WithError(err)
}
