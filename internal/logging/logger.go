// Package logging builds the structured logger used by the receiver
// command, following the same slog-plus-lumberjack shape
// used elsewhere in the fleet for rotated JSON logs.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger. LogFile is optional: when empty, output
// goes to stderr only.
type Options struct {
	LogFile string
	Debug   bool
}

// New builds a slog.Logger writing JSON lines to stderr, additionally
// tee'd to a rotating file when Options.LogFile is set.
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var writer io.Writer = os.Stderr
	if opts.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stderr, rotator)
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
