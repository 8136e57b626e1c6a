// Package url turns location bar input into navigable urls.
package url

import (
	"net/url"
	"path/filepath"
	"strings"
)

// InternalScheme prefixes the shell's built-in pages.
const InternalScheme = "moto:"

// Built-in pages.
const (
	NewTabURL = InternalScheme + "newtab"
	ConfigURL = InternalScheme + "config"
	URLInfo   = InternalScheme + "urlinfo"
	CrashURL  = InternalScheme + "crashed"
)

// CrashPage is the notice shown in place of a page whose renderer died.
func CrashPage(lost string) string {
	if lost == "" {
		return CrashURL
	}
	return CrashURL + "?url=" + url.QueryEscape(lost)
}

var knownSchemes = []string{
	"http://",
	"https://",
	"file://",
	"about:",
	"data:",
	InternalScheme,
}

// HasScheme reports whether input starts with a scheme the shell navigates to
// without rewriting.
func HasScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, s := range knownSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}

// IsInternal reports whether rawURL is a moto: page.
func IsInternal(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(rawURL), InternalScheme)
}

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	if input == "" || HasScheme(input) {
		return input
	}
	if isLocalhost(input) {
		return "http://" + input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
// Returns true for strings like "github.com", "localhost:8080" or anything
// with a known scheme.
func LooksLikeURL(input string) bool {
	if input == "" || strings.ContainsAny(input, " \t") {
		return false
	}
	if HasScheme(input) || isLocalhost(input) {
		return true
	}
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return strings.Contains(strings.Trim(host, "."), ".")
}

func isLocalhost(input string) bool {
	host := strings.ToLower(input)
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return host == "localhost" || strings.HasPrefix(host, "localhost:")
}

// LocationBarInputToURL resolves what the user typed into the location field.
// Absolute paths become file urls, URL-like input is normalized, and anything
// else is sent to the search engine. searchTemplate contains a %s
// placeholder for the escaped query. Returns "" for blank input.
func LocationBarInputToURL(input, searchTemplate string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if filepath.IsAbs(input) && !strings.HasPrefix(input, "//") {
		return (&url.URL{Scheme: "file", Path: input}).String()
	}
	if LooksLikeURL(input) {
		return Normalize(input)
	}
	return BuildSearchURL(input, searchTemplate)
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Normalizes by stripping "www." prefix so youtube.com and www.youtube.com
// resolve to the same value.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
