package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It discards output until Init runs.
var Logger = log.New(io.Discard)

// Config holds logger configuration.
type Config struct {
	Debug bool
	// Dir holds habitquest.log. Empty disables the file sink.
	Dir string
	// Stderr overrides the debug mirror, mainly for tests.
	Stderr io.Writer
}

// Init builds the global logger. Records go to a rotating file; in debug
// mode they are mirrored to stderr as well. The returned closer flushes
// the file sink.
func Init(cfg Config) (io.Closer, error) {
	var sinks []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, err
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "habitquest.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		sinks = append(sinks, file)
		closer = file
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		sinks = append(sinks, stderr)
	}

	var w io.Writer = io.Discard
	switch len(sinks) {
	case 0:
	case 1:
		w = sinks[0]
	default:
		w = io.MultiWriter(sinks...)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habitquest",
	})
	return closer, nil
}

// Slog exposes the global logger as a log/slog logger.
func Slog() *slog.Logger {
	return slog.New(Logger)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
