package util

import (
	"fmt"
	"path/filepath"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// NewLogger writes to the console and, when logFile is set, to that file.
// Debug records are only emitted when verbose is true.
func NewLogger(logFile string, verbose bool) (*slog.Logger, error) {
	levels := slog.Levels{slog.PanicLevel, slog.FatalLevel, slog.ErrorLevel, slog.WarnLevel, slog.NoticeLevel, slog.InfoLevel}
	if verbose {
		levels = append(levels, slog.DebugLevel)
	}

	console := handler.NewConsoleHandler(levels)
	if f, ok := console.Formatter().(*slog.TextFormatter); ok {
		f.EnableColor = false
	}
	handlers := []slog.Handler{console}

	if logFile != "" {
		if err := Mkdir(filepath.Dir(logFile)); err != nil {
			return nil, err
		}
		h, err := handler.NewFileHandler(logFile, handler.WithLogLevels(levels))
		if err != nil {
			return nil, fmt.Errorf("NewLogger(%s) -> %w", logFile, err)
		}
		handlers = append(handlers, h)
	}
	return slog.NewWithHandlers(handlers...), nil
}
