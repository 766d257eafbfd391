package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filmwatch/internal/media"
)

// Text renders presentations for a terminal.
type Text struct {
	styled bool
	title  lipgloss.Style
	label  lipgloss.Style
	link   lipgloss.Style
	dim    lipgloss.Style
}

// NewText creates a text renderer. With styled false the output carries no
// escape sequences, which is what pipes and files want.
func NewText(styled bool) *Text {
	return &Text{
		styled: styled,
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		label:  lipgloss.NewStyle().Bold(true),
		link:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (t *Text) style(s lipgloss.Style, str string) string {
	if !t.styled {
		return str
	}
	return s.Render(str)
}

// Render returns the presentation as a few lines of text, newline-terminated.
func (t *Text) Render(p media.Presentation) string {
	p = sanitizePresentation(p)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	if p.Outcome == media.NoTitle {
		line("%s", t.style(t.dim, "No film name found"))
		return b.String()
	}

	line("%s", t.style(t.title, p.Title))

	switch p.Outcome {
	case media.NoURL:
		line("  We've been unable to provide a copy of %s.", p.Title)
		line("  %s %s", t.style(t.label, "Search:"), t.style(t.link, p.SearchURL))
	case media.SpecialCased:
		line("  %s %s", t.style(t.label, "Watch on "+p.Platform+":"), t.style(t.link, p.URL))
	case media.Embedded:
		kind := "Player"
		if p.Kind == media.Image {
			kind = "Image"
		}
		if p.Platform != "" {
			kind += " (" + p.Platform + ")"
		}
		line("  %s %s", t.style(t.label, kind+":"), t.style(t.link, p.EmbedURL))
		if in := p.Instructions; in != nil {
			line("  %s %s", t.style(t.label, "Alternative video source:"), t.style(t.link, in.AlternativeURL))
			line("  %s %s %s", t.style(t.label, "Help with video:"), in.HelpLabel, t.style(t.dim, "<"+in.HelpURL+">"))
		}
	case media.DirectLink:
		line("  %s %s", t.style(t.label, "Watch here:"), t.style(t.link, p.URL))
	}

	return b.String()
}

func sanitizePresentation(p media.Presentation) media.Presentation {
	p.Title = Sanitize(p.Title)
	p.URL = Sanitize(p.URL)
	p.EmbedURL = Sanitize(p.EmbedURL)
	p.Platform = Sanitize(p.Platform)
	p.SearchURL = Sanitize(p.SearchURL)
	if p.Instructions != nil {
		in := *p.Instructions
		in.AlternativeURL = Sanitize(in.AlternativeURL)
		p.Instructions = &in
	}
	return p
}
