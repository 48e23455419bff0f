// Package logging builds the logrus logger shared by commands and
// collaborators.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Options selects level and output format.
type Options struct {
	Level  string // logrus level name, e.g. "info"
	Format string // "text" or "json"
}

// New returns a logger writing to out.
func New(out io.Writer, opts Options) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}

	var formatter logrus.Formatter
	switch opts.Format {
	case "", "text":
		formatter = &logrus.TextFormatter{DisableTimestamp: true}
	case "json":
		formatter = new(logrus.JSONFormatter)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	return &logrus.Logger{
		Out:       out,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}, nil
}

// Discard returns a logger that drops everything. Used by tests and callers
// that do not care about diagnostics.
func Discard() *logrus.Logger {
	return &logrus.Logger{
		Out:       io.Discard,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.PanicLevel,
	}
}
