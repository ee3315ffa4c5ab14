package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AddsAttributes(t *testing.T) {
	// --- Arrange ---
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithLogger(context.Background(), logger)

	// --- Act ---
	ctx = With(ctx, "node", "split")
	FromContext(ctx).Debug("hello")

	// --- Assert ---
	require.Contains(t, buf.String(), "node=split")
	assert.Contains(t, buf.String(), "msg=hello")
}
