package cdp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/domain/entity"
)

func TestNew_RequiresPages(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestAllocatorOptions_ParsesFlags(t *testing.T) {
	e, err := New(context.Background(), Config{
		Pages:      newTestPages(t, nil),
		ExecPath:   "/usr/bin/chromium",
		ProfileDir: t.TempDir(),
		Flags:      []string{"--disable-gpu", "lang=fr", "  ", "--"},
	})
	require.NoError(t, err)

	base := len(e.allocatorOptions())
	e.cfg.Flags = nil
	e.cfg.ExecPath, e.cfg.ProfileDir = "", ""
	assert.Equal(t, base-4, len(e.allocatorOptions()), "two valid flags, exec path and profile dir")
}

func TestDispatch_UnknownWebView(t *testing.T) {
	e, err := New(context.Background(), Config{Pages: newTestPages(t, nil)})
	require.NoError(t, err)

	err = e.Dispatch(context.Background(), entity.ReloadCommand{ID: 42})
	assert.ErrorIs(t, err, entity.ErrUnknownWebView)
}

func TestDispatch_CreateBeforeStart(t *testing.T) {
	e, err := New(context.Background(), Config{Pages: newTestPages(t, nil)})
	require.NoError(t, err)

	err = e.Dispatch(context.Background(), entity.CreateWebViewCommand{ID: 1, URL: "moto:newtab"})
	assert.ErrorIs(t, err, entity.ErrEngineLost)
}

func TestShutdown_WithoutStartIsNoop(t *testing.T) {
	e, err := New(context.Background(), Config{Pages: newTestPages(t, nil)})
	require.NoError(t, err)
	assert.NoError(t, e.Shutdown(context.Background()))
	assert.NoError(t, e.Shutdown(context.Background()))
}
