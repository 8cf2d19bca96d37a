package breggo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, nil))

	l.WithRun(3).WithK(8).WithDivergence("itakura-saito").Info("seeded")

	out := buf.String()
	assert.Contains(t, out, `"run":3`)
	assert.Contains(t, out, `"k":8`)
	assert.Contains(t, out, `"divergence":"itakura-saito"`)
}

func TestLogTraining(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, nil))

	l.LogTraining(context.Background(), 4, 3, 12.5, nil)
	assert.Contains(t, buf.String(), "training completed")

	buf.Reset()
	l.LogTraining(context.Background(), 4, 0, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "training failed")
}

func TestNoopLoggerDiscards(t *testing.T) {
	// Must not panic and must not write anywhere.
	NoopLogger().Info("dropped", "k", 3)
}
