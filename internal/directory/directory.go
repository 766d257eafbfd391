// Package directory resolves film titles to source URLs through a remote
// JSON document of the form {"<title>": {"url": "<source url>"}}.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"filmwatch/internal/httputil"
)

// ErrNotListed is returned by Find when the title has no usable entry.
var ErrNotListed = errors.New("title not listed in directory")

// FetchError reports a failed retrieval or parse of a directory document.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching directory %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Entry is one film's record in the directory.
type Entry struct {
	URL string `json:"url"`
}

// Directory maps trimmed film titles to their raw entries. Entries are
// decoded on lookup so that one malformed record only hides itself.
type Directory struct {
	entries map[string]json.RawMessage
}

// Parse decodes a directory document. The top level must be a JSON object.
func Parse(data []byte) (Directory, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Directory{}, fmt.Errorf("parsing directory: %w", err)
	}
	if raw == nil {
		return Directory{}, fmt.Errorf("parsing directory: document is null")
	}

	// Keys that trim to the same title: an exact key wins, otherwise the
	// first alias in sorted order.
	entries := make(map[string]json.RawMessage, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		title := strings.TrimSpace(key)
		if _, seen := entries[title]; seen && key != title {
			continue
		}
		entries[title] = raw[key]
	}
	return Directory{entries: entries}, nil
}

// Lookup returns the entry for a title. Entries that are not objects, have a
// non-string url, or an empty url are misses.
func (d Directory) Lookup(title string) (Entry, bool) {
	raw, ok := d.entries[strings.TrimSpace(title)]
	if !ok {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false
	}
	e.URL = strings.TrimSpace(e.URL)
	if e.URL == "" {
		return Entry{}, false
	}
	return e, true
}

// Find is Lookup returning ErrNotListed on a miss.
func (d Directory) Find(title string) (Entry, error) {
	e, ok := d.Lookup(title)
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", strings.TrimSpace(title), ErrNotListed)
	}
	return e, nil
}

// Titles returns every title with a usable entry, sorted.
func (d Directory) Titles() []string {
	titles := make([]string, 0, len(d.entries))
	for title := range d.entries {
		if _, ok := d.Lookup(title); ok && title != "" {
			titles = append(titles, title)
		}
	}
	slices.Sort(titles)
	return titles
}

// Len returns the number of raw entries.
func (d Directory) Len() int {
	return len(d.entries)
}

// Fetcher retrieves a directory document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Directory, error)
}

// HTTPFetcher fetches directories over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher. A nil client gets a hardened default.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &HTTPFetcher{client: client}
}

// Fetch downloads and parses the directory at url. Every failure is a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Directory, error) {
	body, err := httputil.GetJSON(ctx, f.client, url)
	if err != nil {
		return Directory{}, &FetchError{URL: url, Err: err}
	}
	d, err := Parse(body)
	if err != nil {
		return Directory{}, &FetchError{URL: url, Err: err}
	}
	return d, nil
}
