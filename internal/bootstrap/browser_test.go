package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/logging"
)

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.Path = "/usr/bin/chromium"

	applyOverrides(cfg, BrowseInput{EnginePath: "  ", RemoteURL: "ws://127.0.0.1:9222"})
	assert.Equal(t, "/usr/bin/chromium", cfg.Engine.Path)
	assert.Equal(t, "ws://127.0.0.1:9222", cfg.Engine.RemoteURL)

	applyOverrides(cfg, BrowseInput{EnginePath: "/opt/chrome"})
	assert.Equal(t, "/opt/chrome", cfg.Engine.Path)
}

func TestInitialURL(t *testing.T) {
	search := "https://duckduckgo.com/?q=%s"

	assert.Empty(t, initialURL("   ", search))
	assert.Equal(t, "https://example.com", initialURL("example.com", search))
	assert.Contains(t, initialURL("golang channels", search), "duckduckgo.com")
}

func TestPromptCause(t *testing.T) {
	root := errors.New("websocket closed")
	wrapped := fmt.Errorf("engine lost: %w", fmt.Errorf("read: %w", root))

	assert.Equal(t, "websocket closed", promptCause(wrapped))
	assert.Equal(t, "unknown error", promptCause(nil))
}

func TestStartupTimer_Log(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithContext(context.Background(), zerolog.New(&buf))

	timer := NewStartupTimer()
	timer.Mark("config")
	timer.MarkDuration("engine", 25*time.Millisecond)
	timer.Log(ctx)

	out := buf.String()
	require.Contains(t, out, "startup timing")
	assert.Contains(t, out, `"config"`)
	assert.Contains(t, out, `"engine":25`)
	assert.GreaterOrEqual(t, timer.Total(), time.Duration(0))
}

func TestStartupTimer_LogDebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithContext(context.Background(), zerolog.New(&buf).Level(zerolog.InfoLevel))

	timer := NewStartupTimer()
	timer.Mark("config")
	timer.LogDebug(ctx)

	assert.Empty(t, buf.String())
}
