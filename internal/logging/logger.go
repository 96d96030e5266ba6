package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// Init configures the shared logger. Output goes to stdout, and additionally to a
// rotated file when logFile is set.
func Init(level, logFile string) {
	Logger.SetFormatter(&logrus.JSONFormatter{})
	Logger.SetLevel(ParseLevel(level))

	if logFile == "" {
		Logger.SetOutput(os.Stdout)
		return
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o700); err != nil {
		Logger.WithError(err).Warn("Failed to create log directory, logging to stdout only")
		Logger.SetOutput(os.Stdout)
		return
	}

	Logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}))
}

// ParseLevel falls back to info for unknown level names.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
