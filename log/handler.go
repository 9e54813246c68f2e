// Package log provides structured logging (slog) configured for VLN tooling.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/embodied-nav/vln-sdk/domain/errors"
)

// Format selects the encoding of log records.
type Format string

const (
	// FormatText writes logfmt-style key=value records.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// Handler implements slog.Handler over a text or JSON handler. Error attributes
// that carry structured details are expanded into a group with their type and
// code.
type Handler struct {
	inner slog.Handler
	opts  handlerConfig
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
	format    Format
	writer    io.Writer
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level:  slog.LevelInfo,
		format: FormatText,
		writer: os.Stderr,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithFormat selects text or JSON output. Unknown formats fall back to text.
func WithFormat(format Format) HandlerOption {
	return func(c *handlerConfig) {
		c.format = format
	}
}

// WithWriter sets the output destination. Default is stderr.
func WithWriter(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		if w != nil {
			c.writer = w
		}
	}
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	hopts := &slog.HandlerOptions{
		Level:       cfg.level,
		AddSource:   cfg.addSource,
		ReplaceAttr: expandErrors,
	}

	var inner slog.Handler
	if cfg.format == FormatJSON {
		inner = slog.NewJSONHandler(cfg.writer, hopts)
	} else {
		inner = slog.NewTextHandler(cfg.writer, hopts)
	}
	return &Handler{inner: inner, opts: cfg}
}

// New returns a logger backed by a new Handler.
func New(opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle writes the record.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	return h.inner.Handle(ctx, record)
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs), opts: h.opts}
}

// WithGroup returns a new Handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), opts: h.opts}
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to slog levels.
// Anything else yields info and false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// expandErrors turns error-valued attributes implementing errors.DetailedError
// into a group {message, type, code}.
func expandErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	err, ok := a.Value.Any().(error)
	if !ok {
		return a
	}
	de, ok := err.(errors.DetailedError)
	if !ok {
		return a
	}

	detail := de.ToErrorDetail()
	attrs := []any{
		slog.String("message", detail.Message),
		slog.String("type", detail.Type),
	}
	if detail.Code != "" {
		attrs = append(attrs, slog.String("code", detail.Code))
	}
	return slog.Group(a.Key, attrs...)
}
