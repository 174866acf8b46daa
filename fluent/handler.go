// Package fluent ships structured logs to Fluentd or Fluent Bit.
package fluent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config holds the Fluent connection settings.
type Config struct {
	Host      string
	Port      int
	TagPrefix string
}

// NewClient creates a Fluent client. The connection is made lazily, so a
// nil error does not mean the collector is reachable.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}
	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	return client, nil
}

// Poster sends a record under a tag. *fluent.Fluent satisfies it.
type Poster interface {
	Post(tag string, message any) error
}

var _ slog.Handler = (*Handler)(nil)

// Handler is a slog.Handler that posts each record as a flat map tagged
// with its lower-cased level.
type Handler struct {
	client Poster
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
}

// NewHandler creates a Handler posting records at or above level.
func NewHandler(client Poster, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{client: client, level: level}
}

// Enabled reports whether level meets the handler's minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle posts the record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]any, len(h.attrs)+r.NumAttrs()+3)
	for _, a := range h.attrs {
		addAttr(data, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(data, h.group, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	data["level"] = strings.ToLower(r.Level.String())
	data["message"] = r.Message
	data["timestamp"] = ts.UTC().Format(time.RFC3339Nano)

	return h.client.Post(strings.ToLower(r.Level.String()), data)
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup returns a handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

// addAttr flattens a into data, joining group keys with dots. Errors are
// stored as their message.
func addAttr(data map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			if a.Key == "" {
				addAttr(data, prefix, ga)
			} else {
				addAttr(data, key, ga)
			}
		}
		return
	}
	switch v := a.Value.Any().(type) {
	case error:
		data[key] = v.Error()
	case time.Duration:
		data[key] = v.String()
	case time.Time:
		data[key] = v.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		data[key] = v.String()
	default:
		data[key] = v
	}
}
