package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	sanggaslog "github.com/fwojciec/sangga/slog"
	"github.com/stretchr/testify/assert"
)

func TestMultiHandler(t *testing.T) {
	t.Parallel()

	t.Run("fans out to enabled handlers", func(t *testing.T) {
		t.Parallel()

		var info, warn bytes.Buffer
		logger := slog.New(sanggaslog.NewMultiHandler(
			slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
			nil,
			slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
		))

		logger.Info("started", "addr", ":8080")
		logger.Warn("slow search")

		assert.Contains(t, info.String(), "started")
		assert.Contains(t, info.String(), "slow search")
		assert.NotContains(t, warn.String(), "started")
		assert.Contains(t, warn.String(), "slow search")
	})

	t.Run("carries attrs and groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(sanggaslog.NewMultiHandler(slog.NewTextHandler(&buf, nil))).
			With("service", "sangga").
			WithGroup("http")

		logger.Info("request", "status", 200)

		assert.Contains(t, buf.String(), "service=sangga")
		assert.Contains(t, buf.String(), "http.status=200")
	})

	t.Run("disabled when no handler accepts level", func(t *testing.T) {
		t.Parallel()

		h := sanggaslog.NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))

		assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
		assert.True(t, h.Enabled(t.Context(), slog.LevelError))
	})
}
