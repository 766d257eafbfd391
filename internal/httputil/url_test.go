package httputil

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://example.com/films.json", false},
		{"valid HTTP", "http://localhost:8000/dev/films.json", false},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"blank string", "   ", true},
		{"relative path", "films.json", true},
		{"no host", "https://", true},
		{"bad escape", "https://example.com/%zz", true},
		{"valid with query", "https://example.com/path?q=test&a=b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		query string
		want  string
	}{
		{
			"simple title",
			"https://www.justwatch.com/au/search",
			"Metropolis",
			"https://www.justwatch.com/au/search?q=Metropolis",
		},
		{
			"spaces and punctuation",
			"https://www.justwatch.com/au/search",
			"  Dr. Strangelove  or: How I Learned ",
			"https://www.justwatch.com/au/search?q=Dr.+Strangelove+or%3A+How+I+Learned",
		},
		{
			"existing query kept",
			"https://duckduckgo.com/?ia=web",
			"Nosferatu",
			"https://duckduckgo.com/?ia=web&q=Nosferatu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchURL(tt.base, tt.query); got != tt.want {
				t.Errorf("SearchURL(%q, %q) = %q, want %q", tt.base, tt.query, got, tt.want)
			}
		})
	}
}
