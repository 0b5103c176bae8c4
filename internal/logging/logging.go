// Package logging builds the application logger. The terminal belongs to the
// UI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level     string
	Format    string
	Path      string
	Prefix    string
	Timestamp bool
}

func DefaultOptions() Options {
	return Options{
		Level:     "info",
		Format:    "text",
		Prefix:    "tasklist",
		Timestamp: true,
	}
}

// Open creates the log file named by opts.Path and returns a logger writing
// to it. The caller closes the returned closer. An empty path discards output.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return New(io.Discard, opts), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, opts), file, nil
}

func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamp,
		Prefix:          opts.Prefix,
	})
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
