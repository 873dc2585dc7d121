// Package log builds [slog.Handler] values for the command line tools.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// GetLevel parses a level name. "trace" is accepted as an alias for
// debug, and "fatal" and "panic" as aliases for error.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return slog.LevelDebug, nil
	case "panic", "fatal":
		return slog.LevelError, nil
	case "warning":
		return slog.LevelWarn, nil
	}

	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	return slog.Level(lvl), nil
}

// CreateHandler creates a [slog.Handler] writing to w. The text and
// logfmt formats are rendered by charmbracelet/log.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case TextFormat, "":
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			Formatter:       charmlog.TextFormatter,
		}), nil
	case LogfmtFormat:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			Formatter:       charmlog.LogfmtFormatter,
		}), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, logFormat)
}
