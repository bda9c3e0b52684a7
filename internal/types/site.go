//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Site identifies the public website: its display name, canonical origin and locale.
type Site struct {
	Name    string `json:"name" mapstructure:"name"`
	BaseURL string `json:"baseUrl" mapstructure:"base_url"`
	Locale  string `json:"locale" mapstructure:"locale"`
}

// URL joins path onto the canonical origin. An empty path yields the origin with a trailing slash.
func (s Site) URL(path string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if path == "" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// JobURL returns the canonical detail page of a listing.
func (s Site) JobURL(slug string) string {
	return s.URL("/jobs/" + slug)
}

// Language returns the BCP 47 form of the locale, e.g. "en-NL" for "en_NL".
func (s Site) Language() string {
	return strings.ReplaceAll(s.Locale, "_", "-")
}
