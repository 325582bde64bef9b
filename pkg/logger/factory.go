package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type settings struct {
	format Format
	level  slog.Leveler
	out    io.Writer
	attrs  []slog.Attr
}

// Option configures the logger factory.
type Option func(*settings)

// WithFormat selects text or json output.
func WithFormat(format Format) Option {
	return func(s *settings) { s.format = format }
}

// WithJSONFormat selects json output.
func WithJSONFormat() Option {
	return func(s *settings) { s.format = FormatJSON }
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(s *settings) { s.level = level }
}

// WithOutput sets the destination writer.
func WithOutput(out io.Writer) Option {
	return func(s *settings) { s.out = out }
}

// WithAttrs attaches static attributes to every record.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// New creates a configured *slog.Logger. Defaults: text format, info level,
// stderr output.
func New(opts ...Option) *slog.Logger {
	s := settings{
		format: FormatText,
		level:  slog.LevelInfo,
		out:    os.Stderr,
	}
	for _, opt := range opts {
		opt(&s)
	}

	ho := &slog.HandlerOptions{Level: s.level}

	var handler slog.Handler
	if s.format == FormatJSON {
		handler = slog.NewJSONHandler(s.out, ho)
	} else {
		handler = slog.NewTextHandler(s.out, ho)
	}

	if len(s.attrs) > 0 {
		handler = handler.WithAttrs(s.attrs)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops all records. Services use it as their
// default so a nil-logger check is never needed.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
