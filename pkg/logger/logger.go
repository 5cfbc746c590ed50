package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/angeloszaimis/demo-api/config"
)

var (
	ErrInvalidLevel  = errors.New("logger: invalid level")
	ErrInvalidFormat = errors.New("logger: invalid format")
	ErrInvalidOutput = errors.New("logger: invalid output")
)

// Options describes a logger. The zero value of every field falls back to
// the service defaults: name "demo", level debug, pipe format, stderr and
// "2006-01-02 15:04:05" timestamps.
type Options struct {
	Name       string
	Level      string
	Format     string
	Output     string
	TimeFormat string

	// Writer, when set, replaces the stream selected by Output.
	Writer io.Writer
}

// FromConfig converts the validated logging section into Options.
func FromConfig(cfg config.LoggingConfig) Options {
	return Options{
		Name:       cfg.Name,
		Level:      cfg.Level,
		Format:     cfg.Format,
		Output:     cfg.Output,
		TimeFormat: cfg.TimeFormat,
	}
}

// New returns a logger scoped to opts.Name. It has no side effects on the
// slog default; installing the result process-wide is left to the caller.
func New(opts Options) (*slog.Logger, error) {
	opts = opts.withDefaults()

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	w, err := opts.writer()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(opts.Format) {
	case config.LogFormatPipe:
		return slog.New(NewPipeHandler(w, level, opts.TimeFormat)), nil

	case config.LogFormatConsole:
		handler := log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      opts.TimeFormat,
			Level:           log.Level(level),
			Prefix:          opts.Name,
		})
		return slog.New(handler), nil

	case config.LogFormatJSON:
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		return slog.New(handler).With(slog.String("logger", opts.Name)), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, opts.Format)
	}
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = config.DefaultLoggerName
	}
	if o.Level == "" {
		o.Level = config.LogLevelDebug
	}
	if o.Format == "" {
		o.Format = config.LogFormatPipe
	}
	if o.Output == "" {
		o.Output = config.LogOutputStderr
	}
	if o.TimeFormat == "" {
		o.TimeFormat = config.DefaultTimeFormat
	}
	return o
}

func (o Options) writer() (io.Writer, error) {
	if o.Writer != nil {
		return o.Writer, nil
	}

	switch strings.ToLower(o.Output) {
	case config.LogOutputStderr:
		return os.Stderr, nil
	case config.LogOutputStdout:
		return os.Stdout, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutput, o.Output)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo:
		return slog.LevelInfo, nil
	case config.LogLevelWarn, "warning":
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}
