package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/sangga/config"
	"github.com/fwojciec/sangga/fluent"
	sanggaslog "github.com/fwojciec/sangga/slog"
	"github.com/lmittmann/tint"
	"github.com/muesli/termenv"
)

// newLogger builds the console logger and, when a Fluent host is
// configured, fans records out to Fluent as well. The returned func flushes
// and closes the Fluent connection.
func newLogger(w io.Writer, cfg config.Config) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	console := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    termenv.NewOutput(w).ColorProfile() == termenv.Ascii,
	})

	if cfg.FluentHost == "" {
		return slog.New(console), func() error { return nil }, nil
	}

	client, err := fluent.NewClient(fluent.Config{
		Host:      cfg.FluentHost,
		Port:      cfg.FluentPort,
		TagPrefix: cfg.FluentTag,
	})
	if err != nil {
		return nil, nil, err
	}
	handler := sanggaslog.NewMultiHandler(console, fluent.NewHandler(client, level))
	return slog.New(handler), client.Close, nil
}
