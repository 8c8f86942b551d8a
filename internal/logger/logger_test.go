package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestInitialize_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		verbose   bool
		wantInfo  bool
		wantDebug bool
	}{
		{name: "default shows warnings only"},
		{name: "verbose shows info", verbose: true, wantInfo: true},
		{name: "debug shows everything", debug: true, wantInfo: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := Initialize(&buf, tt.debug, tt.verbose)

			l.Debug("debug line")
			l.Info("info line")
			l.Warn("warn line")

			out := buf.String()
			assert.Contains(t, out, "[WARN]  warn line")
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")))
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
		})
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithLogger(context.Background(), base)
	ctx = With(ctx, "pr_number", 42)

	Info(ctx, "fetching pull request", "owner", "octocat")
	Error(ctx, "fetch failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "[INFO]  fetching pull request pr_number=42 owner=octocat")
	assert.Contains(t, out, "[ERROR] fetch failed pr_number=42 error=boom")
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})).WithGroup("github")

	l.Info("page fetched", "page", 2)

	assert.Contains(t, buf.String(), "github.page=2")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
