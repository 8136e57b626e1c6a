package cdp

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/domain/entity"
)

type fakeBookmarks struct {
	items []*entity.Bookmark
	err   error
}

func (f fakeBookmarks) GetAll(context.Context) ([]*entity.Bookmark, error) {
	return f.items, f.err
}

func newTestPages(t *testing.T, bookmarks BookmarkLister) *Pages {
	t.Helper()
	p, err := NewPages(bookmarks, PageSettings{
		CSSVars:      "--background: #101010;\n",
		SearchEngine: "https://search.example/?q=%s",
		ConfigPath:   "/home/me/.config/moto/config.toml",
		ConfigText:   "[window]\nwidth = 1280\n",
	})
	require.NoError(t, err)
	return p
}

func TestPages_NewTabListsBookmarks(t *testing.T) {
	p := newTestPages(t, fakeBookmarks{items: []*entity.Bookmark{
		entity.NewBookmark("https://go.dev", "Go"),
	}})

	content, mime, ok, err := p.Render(context.Background(), "moto:newtab")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "text/html", mime)
	html := string(content)
	assert.Contains(t, html, `href="https://go.dev"`)
	assert.Contains(t, html, "--background: #101010;")
	assert.Contains(t, html, "search.example")
}

func TestPages_NewTabWithoutBookmarks(t *testing.T) {
	p := newTestPages(t, nil)
	content, _, ok, err := p.Render(context.Background(), "moto:newtab")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, string(content), "No bookmarks yet")
}

func TestPages_NewTabBookmarkError(t *testing.T) {
	p := newTestPages(t, fakeBookmarks{err: errors.New("db gone")})
	_, _, ok, err := p.Render(context.Background(), "moto:newtab")
	assert.True(t, ok)
	assert.ErrorContains(t, err, "db gone")
}

func TestPages_ConfigAfterUpdate(t *testing.T) {
	p := newTestPages(t, nil)
	p.Update(PageSettings{ConfigPath: "/tmp/config.toml", ConfigText: "a = \"<b>\"\n"})

	content, _, ok, err := p.Render(context.Background(), "moto:config")
	require.NoError(t, err)
	assert.True(t, ok)
	html := string(content)
	assert.Contains(t, html, "/tmp/config.toml")
	assert.Contains(t, html, "&lt;b&gt;", "config text is escaped")
}

func TestPages_ConfigEditing(t *testing.T) {
	p := newTestPages(t, nil)

	content, _, _, err := p.Render(context.Background(), "moto:config?saved=1")
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "<textarea")
	assert.Contains(t, html, "config.save")
	assert.Contains(t, html, `id="saved"`)

	p.Update(PageSettings{
		ConfigPath:  "/tmp/config.toml",
		ConfigText:  "[window]\nwidth = 1280\n",
		ConfigDraft: "[window]\nwidth = 0\n",
		ConfigError: "window.width must be positive",
	})
	content, _, _, err = p.Render(context.Background(), "moto:config?saved=1")
	require.NoError(t, err)
	html = string(content)
	assert.Contains(t, html, "width = 0", "the rejected draft is kept")
	assert.Contains(t, html, "window.width must be positive")
	assert.NotContains(t, html, `id="saved"`)
}

func TestPages_ConfigReadOnlyWithoutPath(t *testing.T) {
	p := newTestPages(t, nil)
	p.Update(PageSettings{ConfigText: "a = 1\n"})

	content, _, _, err := p.Render(context.Background(), "moto:config")
	require.NoError(t, err)
	assert.NotContains(t, string(content), "<textarea")
	assert.Contains(t, string(content), "<pre>a = 1")
}

func TestPages_Crashed(t *testing.T) {
	p := newTestPages(t, nil)

	content, _, ok, err := p.Render(context.Background(), "moto:crashed?url=https%3A%2F%2Fgo.dev%2Fdoc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, string(content), `href="https://go.dev/doc"`)

	content, _, _, err = p.Render(context.Background(), "moto:crashed?url=javascript%3Aalert(1)")
	require.NoError(t, err)
	assert.NotContains(t, string(content), "alert")

	content, _, _, err = p.Render(context.Background(), "moto:crashed")
	require.NoError(t, err)
	assert.Contains(t, string(content), "This page crashed")
	assert.NotContains(t, string(content), "Reload page")
}

func TestPages_URLInfo(t *testing.T) {
	content, mime, ok, err := newTestPages(t, nil).Render(context.Background(), "moto:urlinfo?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3D1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "text/plain", mime)
	assert.Contains(t, string(content), "host: example.com")
	assert.Contains(t, string(content), `query: "b=1"`)
}

func TestPages_NonInternalAndUnknown(t *testing.T) {
	p := newTestPages(t, nil)

	_, _, ok, err := p.Render(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, ok, err = p.Render(context.Background(), "moto:nope")
	assert.True(t, ok)
	assert.ErrorContains(t, err, "unknown internal page")
}

func TestDataURL(t *testing.T) {
	u := dataURL("text/plain", []byte("hi"))
	require.True(t, strings.HasPrefix(u, "data:text/plain;charset=utf-8;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(u, "data:text/plain;charset=utf-8;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(raw))
}
