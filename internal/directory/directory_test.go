package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

const sampleDirectory = `{
	"Metropolis": {"url": "https://archive.org/details/Metropolis1927"},
	"  Nosferatu ": {"url": " https://vimeo.com/55555 "},
	"The General": {"url": ""},
	"Sunrise": {"url": 42},
	"Battleship Potemkin": "https://example.com/potemkin",
	"Nanook of the North": {"link": "https://example.com/nanook"}
}`

func TestParseAndLookup(t *testing.T) {
	d, err := Parse([]byte(sampleDirectory))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	tests := []struct {
		title   string
		wantURL string
		wantOK  bool
	}{
		{"Metropolis", "https://archive.org/details/Metropolis1927", true},
		{"  Metropolis\t", "https://archive.org/details/Metropolis1927", true},
		{"Nosferatu", "https://vimeo.com/55555", true},
		{"The General", "", false},
		{"Sunrise", "", false},
		{"Battleship Potemkin", "", false},
		{"Nanook of the North", "", false},
		{"metropolis", "", false},
		{"Unknown Film", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			e, ok := d.Lookup(tt.title)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.title, ok, tt.wantOK)
			}
			if e.URL != tt.wantURL {
				t.Errorf("Lookup(%q) url = %q, want %q", tt.title, e.URL, tt.wantURL)
			}
		})
	}
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, doc := range []string{`[{"url":"x"}]`, `"Metropolis"`, `null`, `{`, ``} {
		t.Run(doc, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Errorf("Parse(%q) should fail", doc)
			}
		})
	}
}

func TestParseDuplicateTitles(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "exact key beats trailing alias",
			doc:  `{"Metropolis": {"url": "https://a.example/1"}, "Metropolis ": {"url": "https://b.example/2"}}`,
			want: "https://a.example/1",
		},
		{
			name: "exact key beats leading alias",
			doc:  `{" Metropolis": {"url": "https://b.example/2"}, "Metropolis": {"url": "https://a.example/1"}}`,
			want: "https://a.example/1",
		},
		{
			name: "first alias in sorted order",
			doc:  `{"Metropolis ": {"url": "https://b.example/2"}, " Metropolis": {"url": "https://c.example/3"}}`,
			want: "https://c.example/3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				d, err := Parse([]byte(tt.doc))
				if err != nil {
					t.Fatalf("Parse() error: %v", err)
				}
				e, ok := d.Lookup("Metropolis")
				if !ok || e.URL != tt.want {
					t.Fatalf("parse %d: Lookup() = %q, %v, want %q", i, e.URL, ok, tt.want)
				}
			}
		})
	}
}

func TestFind(t *testing.T) {
	d, _ := Parse([]byte(sampleDirectory))

	if _, err := d.Find("Metropolis"); err != nil {
		t.Errorf("Find(Metropolis) error: %v", err)
	}
	_, err := d.Find("Unknown Film")
	if !errors.Is(err, ErrNotListed) {
		t.Errorf("Find(Unknown Film) error = %v, want ErrNotListed", err)
	}
}

func TestTitles(t *testing.T) {
	d, _ := Parse([]byte(sampleDirectory))

	want := []string{"Metropolis", "Nosferatu"}
	if got := d.Titles(); !slices.Equal(got, want) {
		t.Errorf("Titles() = %v, want %v", got, want)
	}
	if d.Len() != 6 {
		t.Errorf("Len() = %d, want 6", d.Len())
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/films.json":
			w.Write([]byte(sampleDirectory))
		case "/broken.json":
			w.Write([]byte(`<html>not json</html>`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	ctx := context.Background()

	d, err := f.Fetch(ctx, srv.URL+"/films.json")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if e, ok := d.Lookup("Metropolis"); !ok || e.URL != "https://archive.org/details/Metropolis1927" {
		t.Errorf("Lookup(Metropolis) = %+v, %v", e, ok)
	}

	for _, path := range []string{"/broken.json", "/error.json"} {
		t.Run(path, func(t *testing.T) {
			_, err := f.Fetch(ctx, srv.URL+path)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Fetch(%s) error = %v, want *FetchError", path, err)
			}
			if fe.URL != srv.URL+path {
				t.Errorf("FetchError.URL = %q", fe.URL)
			}
		})
	}
}

func TestHTTPFetcherUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/films.json"
	srv.Close()

	_, err := NewHTTPFetcher(nil).Fetch(context.Background(), url)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Errorf("error = %v, want *FetchError", err)
	}
}
