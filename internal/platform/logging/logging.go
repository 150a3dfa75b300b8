package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// Options selects where and how verbosely the application logs.
type Options struct {
	Name   string
	Level  string
	Path   string
	Output io.Writer
}

// New builds the root logger. When Output is nil the log is appended to Path,
// so the terminal UI never shares the screen with log lines.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	out := opts.Output
	var closer io.Closer = nopCloser{}
	if out == nil {
		if opts.Path == "" {
			return hclog.NewNullLogger(), closer, nil
		}
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	name := opts.Name
	if name == "" {
		name = "serene"
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.LevelFromString(opts.Level),
		Output: out,
	})
	return logger, closer, nil
}

// OrNull returns logger, or a discarding logger when it is nil.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
