package opener

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"linux", "xdg-open", []string{"https://example.com"}},
		{"freebsd", "xdg-open", []string{"https://example.com"}},
		{"darwin", "open", []string{"https://example.com"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			o := New(tt.goos)
			if o.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", o.Name(), tt.wantName)
			}
			c, ok := o.(*Command)
			if !ok {
				t.Fatalf("New(%q) returned %T", tt.goos, o)
			}
			if got := c.Args("https://example.com"); !slices.Equal(got, tt.wantArgs) {
				t.Errorf("Args() = %v, want %v", got, tt.wantArgs)
			}
		})
	}
}

func TestOpenRejectsUnsafeURLs(t *testing.T) {
	o := &Command{name: "definitely-not-a-real-opener"}
	for _, url := range []string{"", "javascript:alert(1)", "file:///etc/passwd", "--help"} {
		t.Run(url, func(t *testing.T) {
			if err := o.Open(url); err == nil {
				t.Errorf("Open(%q) should fail", url)
			}
		})
	}
}

func TestOpenMissingProgram(t *testing.T) {
	o := &Command{name: "definitely-not-a-real-opener"}
	if o.Available() {
		t.Skip("unexpected program in PATH")
	}
	if err := o.Open("https://example.com"); err == nil {
		t.Error("Open() should fail when the program is missing")
	}
}
