package url

import (
	"net/url"
	"strings"
)

// DefaultSearchEngine is used when no template is configured.
const DefaultSearchEngine = "https://duckduckgo.com/?q=%s"

// BuildSearchURL fills template's %s placeholder with the escaped query.
// An empty template falls back to DefaultSearchEngine.
func BuildSearchURL(query, template string) string {
	if template == "" {
		template = DefaultSearchEngine
	}
	escaped := url.QueryEscape(strings.TrimSpace(query))
	if !strings.Contains(template, "%s") {
		return template + escaped
	}
	return strings.Replace(template, "%s", escaped, 1)
}

// Info is the breakdown shown by the moto:urlinfo page.
type Info struct {
	Full   string
	Scheme string
	Host   string
	Path   string
	Query  string
}

// Describe parses rawURL for moto:urlinfo. Opaque urls such as
// "moto:urlinfo?x=1" report their opaque part as the path.
func Describe(rawURL string) (Info, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Info{}, err
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	return Info{
		Full:   rawURL,
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   path,
		Query:  u.RawQuery,
	}, nil
}
