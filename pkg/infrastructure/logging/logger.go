package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the process-wide logger; nil until Init is called
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Level string
	Debug bool
	// Dir is where shopplan.log is rotated; empty logs to stderr only
	Dir string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	level := log.WarnLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = os.Stderr
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "shopplan.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = fileWriter
		if cfg.Debug {
			writer = io.MultiWriter(os.Stderr, fileWriter)
		}
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "shopplan",
	})

	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
