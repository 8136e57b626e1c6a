package cdp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	neturl "net/url"
	"strings"
	"sync"

	"github.com/bnema/moto/assets"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
)

const maxNewTabBookmarks = 24

// BookmarkLister feeds the new tab page.
type BookmarkLister interface {
	GetAll(ctx context.Context) ([]*entity.Bookmark, error)
}

// PageSettings is the part of the configuration the built-in pages show.
type PageSettings struct {
	// CSSVars declares the palette as CSS custom properties.
	CSSVars      string
	SearchEngine string
	ConfigPath   string
	// ConfigText is the effective configuration, already rendered.
	ConfigText   string
	// ConfigDraft and ConfigError keep a rejected edit on the config page.
	ConfigDraft  string
	ConfigError  string
}

// Pages renders the moto: pages.
type Pages struct {
	templates *template.Template
	bookmarks BookmarkLister

	mu       sync.RWMutex
	settings PageSettings
}

// NewPages parses the embedded templates. bookmarks may be nil.
func NewPages(bookmarks BookmarkLister, settings PageSettings) (*Pages, error) {
	tmpl, err := template.ParseFS(assets.Pages, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Pages{templates: tmpl, bookmarks: bookmarks, settings: settings}, nil
}

// Update replaces the settings after a config reload.
func (p *Pages) Update(settings PageSettings) {
	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()
}

// Render returns the document for an internal url. ok is false for urls that
// are not moto: pages.
func (p *Pages) Render(ctx context.Context, rawURL string) (content []byte, mime string, ok bool, err error) {
	if !url.IsInternal(rawURL) {
		return nil, "", false, nil
	}
	p.mu.RLock()
	settings := p.settings
	p.mu.RUnlock()

	name, query, _ := strings.Cut(strings.TrimPrefix(rawURL, url.InternalScheme), "?")
	switch strings.ToLower(name) {
	case "newtab":
		content, err = p.renderNewTab(ctx, settings)
		return content, "text/html", true, err
	case "config":
		text := settings.ConfigText
		if settings.ConfigDraft != "" {
			text = settings.ConfigDraft
		}
		v, _ := neturl.ParseQuery(query)
		content, err = p.execute("config.html", map[string]any{
			"CSSVars":  template.CSS(settings.CSSVars),
			"Path":     settings.ConfigPath,
			"Content":  text,
			"Error":    settings.ConfigError,
			"Saved":    v.Get("saved") != "" && settings.ConfigError == "",
			"Editable": settings.ConfigPath != "",
		})
		return content, "text/html", true, err
	case "urlinfo":
		return []byte(URLInfo(query)), "text/plain", true, nil
	case "crashed":
		content, err = p.execute("crashed.html", map[string]any{
			"CSSVars": template.CSS(settings.CSSVars),
			"URL":     crashedURL(query),
		})
		return content, "text/html", true, err
	default:
		return nil, "", true, fmt.Errorf("unknown internal page %q", rawURL)
	}
}

func (p *Pages) renderNewTab(ctx context.Context, settings PageSettings) ([]byte, error) {
	var bookmarks []*entity.Bookmark
	if p.bookmarks != nil {
		all, err := p.bookmarks.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookmarks: %w", err)
		}
		bookmarks = all[:min(len(all), maxNewTabBookmarks)]
	}
	search := settings.SearchEngine
	if search == "" {
		search = url.DefaultSearchEngine
	}
	return p.execute("newtab.html", map[string]any{
		"CSSVars":        template.CSS(settings.CSSVars),
		"SearchTemplate": search,
		"Bookmarks":      bookmarks,
	})
}

func (p *Pages) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// URLInfo describes the url given as the query of moto:urlinfo.
func URLInfo(query string) string {
	raw := query
	if v, err := neturl.ParseQuery(query); err == nil && v.Get("url") != "" {
		raw = v.Get("url")
	}
	u, err := neturl.Parse(raw)
	if err != nil {
		return fmt.Sprintf("Full url: %s\n   error: %v\n", raw, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Full url: %s\n", u.String())
	fmt.Fprintf(&b, "  scheme: %s\n", u.Scheme)
	fmt.Fprintf(&b, "    host: %s\n", u.Host)
	fmt.Fprintf(&b, "    path: %s\n", u.Path)
	fmt.Fprintf(&b, "   query: %q\n", u.RawQuery)
	if u.Fragment != "" {
		fmt.Fprintf(&b, "fragment: %s\n", u.Fragment)
	}
	return b.String()
}

// crashedURL returns the page the crash notice offers to reload. Only web
// urls are offered.
func crashedURL(query string) string {
	v, err := neturl.ParseQuery(query)
	if err != nil {
		return ""
	}
	raw := v.Get("url")
	if u, err := neturl.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file") {
		return ""
	}
	return raw
}

// dataURL packs a rendered page for Page.navigate.
func dataURL(mime string, content []byte) string {
	return "data:" + mime + ";charset=utf-8;base64," + base64.StdEncoding.EncodeToString(content)
}
