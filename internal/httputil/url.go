package httputil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that a URL is absolute, uses http or https, and has a host.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("URL is empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("only HTTP(S) URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// SearchURL builds a search link for a film title, e.g.
// "https://www.justwatch.com/au/search" + "Metropolis" -> ".../search?q=Metropolis".
// Existing query parameters on base are kept.
func SearchURL(base, query string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?q=" + url.QueryEscape(query)
	}
	q := u.Query()
	q.Set("q", strings.Join(strings.Fields(query), " "))
	u.RawQuery = q.Encode()
	return u.String()
}
