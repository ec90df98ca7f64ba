// Package log builds the [slog.Handler] used by the gradlepin CLI.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Format selects the log line encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// GetLevel parses a level name. "warning" and "trace" are accepted as
// aliases of warn and debug.
func GetLevel(level string) (charmlog.Level, error) {
	switch s := strings.ToLower(strings.TrimSpace(level)); s {
	case "warning":
		return charmlog.WarnLevel, nil
	case "trace":
		return charmlog.DebugLevel, nil
	default:
		lvl, err := charmlog.ParseLevel(s)
		if err != nil {
			return lvl, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
		}

		return lvl, nil
	}
}

// GetFormat parses a format name. The empty string selects [FormatText].
func GetFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(format))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatLogfmt, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// CreateHandlerWithStrings is [CreateHandler] for flag values.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}

	f, err := GetFormat(format)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, lvl, f), nil
}

// CreateHandler returns a handler writing to w. Machine readable formats
// carry timestamps; text output is meant for a terminal and omits them.
func CreateHandler(w io.Writer, level charmlog.Level, format Format) slog.Handler {
	opts := charmlog.Options{Level: level}

	switch format {
	case FormatJSON:
		opts.Formatter = charmlog.JSONFormatter
		opts.ReportTimestamp = true
	case FormatLogfmt:
		opts.Formatter = charmlog.LogfmtFormatter
		opts.ReportTimestamp = true
	case FormatText:
		opts.Formatter = charmlog.TextFormatter
	}

	return charmlog.NewWithOptions(w, opts)
}
