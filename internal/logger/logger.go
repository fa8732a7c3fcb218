// Package logger holds the process-wide zerolog logger. The zero
// value discards everything, so packages may log before Init runs
// (tests rely on this).
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the global logger. Output always goes to stderr so
// stdout stays free for command output; logFile adds an append-only
// file writer on top.
func Init(level, logFile string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		},
	}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	log = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}

// InitQuiet discards all log output; used by commands that emit
// machine-readable results on stdout.
func InitQuiet() {
	log = zerolog.New(io.Discard)
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return log.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal starts a fatal-level event; its Msg call exits the process.
func Fatal() *zerolog.Event {
	return log.Fatal()
}
