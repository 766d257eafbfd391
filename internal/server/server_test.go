package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"filmwatch/internal/directory"
	"filmwatch/internal/media"
	"filmwatch/internal/render"
	"filmwatch/internal/resolve"
)

type stubFetcher struct {
	dirs map[string]string
}

func (f stubFetcher) Fetch(_ context.Context, u string) (directory.Directory, error) {
	body, ok := f.dirs[u]
	if !ok {
		return directory.Directory{}, &directory.FetchError{URL: u, Err: io.ErrUnexpectedEOF}
	}
	return directory.Parse([]byte(body))
}

const (
	defaultDir = "https://films.example.com/default.json"
	otherDir   = "https://films.example.com/other.json"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	f := stubFetcher{dirs: map[string]string{
		defaultDir: `{"Metropolis": {"url": "https://vimeo.com/55555"}}`,
		otherDir:   `{"Metropolis": {"url": "https://example.com/metropolis"}}`,
	}}
	s := New(resolve.New(f), render.NewHTML(render.Options{}), defaultDir, nil, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, q url.Values) *http.Response {
	t.Helper()
	u := ts.URL + path
	if q != nil {
		u += "?" + q.Encode()
	}
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("body = %q", body)
	}
}

func TestWatchJSON(t *testing.T) {
	ts := newTestServer(t, WithDirectoryOverride(true))

	tests := []struct {
		name      string
		query     url.Values
		want      media.Outcome
		wantEmbed string
		wantURL   string
	}{
		{
			name:  "no title",
			query: url.Values{},
			want:  media.NoTitle,
		},
		{
			name:      "direct url",
			query:     url.Values{"title": {"Nosferatu"}, "url": {"https://www.youtube.com/watch?v=abc123"}},
			want:      media.Embedded,
			wantEmbed: "https://www.youtube.com/embed/abc123",
		},
		{
			name:      "server directory",
			query:     url.Values{"title": {"Metropolis"}},
			want:      media.Embedded,
			wantEmbed: "https://player.vimeo.com/video/55555",
		},
		{
			name:    "directory from query",
			query:   url.Values{"title": {"Metropolis"}, "directory": {otherDir}},
			want:    media.DirectLink,
			wantURL: "https://example.com/metropolis",
		},
		{
			name:  "empty directory in query disables lookup",
			query: url.Values{"title": {"Metropolis"}, "directory": {""}},
			want:  media.NoURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts, "/api/watch", tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var got struct {
				Outcome  media.Outcome `json:"outcome"`
				URL      string        `json:"url"`
				EmbedURL string        `json:"embed_url"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if got.Outcome != tt.want {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.want)
			}
			if got.EmbedURL != tt.wantEmbed {
				t.Errorf("embed_url = %q, want %q", got.EmbedURL, tt.wantEmbed)
			}
			if got.URL != tt.wantURL && tt.wantURL != "" {
				t.Errorf("url = %q, want %q", got.URL, tt.wantURL)
			}
		})
	}
}

func TestWatchPage(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/watch", url.Values{"title": {"Metropolis"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	src, ok := doc.Find("iframe.embedded-media").Attr("src")
	if !ok || src != "https://player.vimeo.com/video/55555" {
		t.Errorf("iframe src = %q, %v", src, ok)
	}
	if doc.Find("style").Length() == 0 {
		t.Error("page should carry the stylesheet")
	}
}

func TestWatchPageUnavailableDirectory(t *testing.T) {
	ts := newTestServer(t, WithDirectoryOverride(true))

	resp := get(t, ts, "/watch", url.Values{"title": {"Metropolis"}, "directory": {"https://films.example.com/missing.json"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Text(), "unable to provide a copy") {
		t.Errorf("expected the no-source message, got %q", doc.Text())
	}
}

func TestRequestDirectoryIgnoredByDefault(t *testing.T) {
	ts := newTestServer(t)

	for _, dir := range []string{otherDir, "", "http://169.254.169.254/latest/meta-data"} {
		t.Run(dir, func(t *testing.T) {
			resp := get(t, ts, "/api/watch", url.Values{"title": {"Metropolis"}, "directory": {dir}})
			var got struct {
				Outcome  media.Outcome `json:"outcome"`
				EmbedURL string        `json:"embed_url"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if got.Outcome != media.Embedded || got.EmbedURL != "https://player.vimeo.com/video/55555" {
				t.Errorf("got %+v, want the configured directory's entry", got)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/watch", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
