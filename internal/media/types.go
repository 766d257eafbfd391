// Package media defines shared types for the filmwatch application.
package media

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Outcome selects which variant of a Presentation is active.
type Outcome int

const (
	NoTitle Outcome = iota
	NoURL
	SpecialCased
	Embedded
	DirectLink
)

func (o Outcome) String() string {
	switch o {
	case NoTitle:
		return "no_title"
	case NoURL:
		return "no_url"
	case SpecialCased:
		return "special_cased"
	case Embedded:
		return "embedded"
	case DirectLink:
		return "direct_link"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name so JSON output stays readable.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (o *Outcome) UnmarshalText(b []byte) error {
	parsed, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOutcome maps a stored outcome name back to its value.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{NoTitle, NoURL, SpecialCased, Embedded, DirectLink} {
		if o.String() == s {
			return o, nil
		}
	}
	return NoTitle, fmt.Errorf("unknown outcome %q", s)
}

// EmbedKind tells the renderer how an embed URL is shown.
type EmbedKind int

const (
	Frame EmbedKind = iota // inline player (iframe)
	Image                  // anchor wrapping an image
)

func (k EmbedKind) String() string {
	switch k {
	case Frame:
		return "frame"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

func (k EmbedKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reference is the film being resolved.
type Reference struct {
	Title string // Trimmed film title
	URL   string // Trimmed candidate source URL, possibly empty
}

// NewReference trims both fields. An empty title is kept empty.
func NewReference(title, url string) Reference {
	return Reference{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(url),
	}
}

// Classification is the result of matching a URL against the rule table.
type Classification struct {
	EmbedURL string    // Canonical embeddable URL
	Kind     EmbedKind // Frame or Image
	Source   string    // Platform tag, empty for untagged rules
}

// Instructions is supplementary help shown next to an embed.
type Instructions struct {
	AlternativeURL string `json:"alternative_url,omitempty"` // The video's own page
	HelpLabel      string `json:"help_label,omitempty"`
	HelpURL        string `json:"help_url,omitempty"`
}

// IsZero reports whether there is nothing to show.
func (i Instructions) IsZero() bool {
	return i == Instructions{}
}

// Presentation is the terminal output of a resolution. Outcome selects which
// of the remaining fields are meaningful:
//
//	NoTitle      nothing
//	NoURL        Title, SearchURL
//	SpecialCased Title, URL, Platform
//	Embedded     Title, URL, EmbedURL, Kind, Platform (source tag), Instructions
//	DirectLink   Title, URL
type Presentation struct {
	Outcome      Outcome       `json:"outcome"`
	Title        string        `json:"title,omitempty"`
	URL          string        `json:"url,omitempty"`
	EmbedURL     string        `json:"embed_url,omitempty"`
	Kind         EmbedKind     `json:"-"` // Encoded only for Embedded
	Platform     string        `json:"platform,omitempty"`
	Instructions *Instructions `json:"instructions,omitempty"`
	SearchURL    string        `json:"search_url,omitempty"`
}

// MarshalJSON writes kind only for embedded presentations.
func (p Presentation) MarshalJSON() ([]byte, error) {
	type fields Presentation
	out := struct {
		fields
		Kind *EmbedKind `json:"kind,omitempty"`
	}{fields: fields(p)}
	if p.Outcome == Embedded {
		out.Kind = &p.Kind
	}
	return json.Marshal(out)
}

// WatchURL returns the link a user should follow, or "" when there is none.
func (p Presentation) WatchURL() string {
	switch p.Outcome {
	case Embedded:
		return p.EmbedURL
	case SpecialCased, DirectLink:
		return p.URL
	case NoURL:
		return p.SearchURL
	default:
		return ""
	}
}

// HistoryEntry represents a single recorded lookup.
type HistoryEntry struct {
	ID         string    // Row id (uuid)
	Title      string    // Film title
	URL        string    // Resolved source URL, may be empty
	Outcome    Outcome   // Resolution outcome
	Platform   string    // Platform label or source tag
	LookedUpAt time.Time // When the lookup happened
}
