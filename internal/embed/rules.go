// Package embed classifies film source URLs against known hosting platforms
// and rewrites them into embeddable form.
package embed

import (
	"fmt"
	"regexp"
	"strings"

	"filmwatch/internal/media"
)

// Placeholder is replaced with the first capture group of a matching rule.
const Placeholder = "${1}"

// Rule maps one hosting platform's URL shape to its embeddable form.
type Rule struct {
	Pattern  *regexp.Regexp
	Template string          // Must contain Placeholder exactly once
	Kind     media.EmbedKind // How the rewritten URL is shown
	Source   string          // Platform tag, empty when the rule has none
}

// SpecialCase is a platform with no known embeddable form. URLs matching it
// bypass the rule table entirely.
type SpecialCase struct {
	Label   string
	Pattern *regexp.Regexp
}

// Declaration order matters: when several rules match, the last one wins.
// The image rule therefore overrides any platform match on an image-like URL.
var defaultRules = []Rule{
	{
		Pattern:  regexp.MustCompile(`^.*archive.org/details/([^/]+)$`),
		Template: "https://archive.org/embed/${1}",
		Source:   "archive.org",
	},
	{
		Pattern:  regexp.MustCompile(`^.*dailymotion.com/video/([^_]+)_.*$`),
		Template: "https://dailymotion.com/embed/video/${1}",
		Source:   "DailyMotion",
	},
	{
		Pattern:  regexp.MustCompile(`^.*microsoftstream.com/video/([^/]+)$`),
		Template: "https://web.microsoftstream.com/embed/video/${1}",
		Source:   "Stream",
	},
	{
		Pattern:  regexp.MustCompile(`^(?:https?:)?//(?:www\.)?vimeo\.com/([^?&"]+).*$`),
		Template: "https://player.vimeo.com/video/${1}",
		Source:   "Vimeo",
	},
	{
		Pattern:  regexp.MustCompile(`^.*(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/(?:watch\?v=|embed/|v/|user/.+/)?([^?&"]+).*$`),
		Template: "https://www.youtube.com/embed/${1}",
		Source:   "YouTube",
	},
	{
		Pattern:  regexp.MustCompile(`^.*(?:https?://)?(?:www\.)?(?:youtube-nocookie\.com)/(?:watch\?v=|embed/|v/|user/.+/)?([^?&"]+).*$`),
		Template: "https://www.youtube-nocookie.com/embed/${1}",
		Source:   "YouTube",
	},
	{
		Pattern:  regexp.MustCompile(`(?i)(^[-a-zA-Z0-9@:%_+.~#?&/=]{2,256}\.[a-z]{2,4}\b(/[-a-zA-Z0-9@:%_+.~#?&/=]*)?\.(?:jpe?g|gif|png|svg)\b.*$)`),
		Template: "${1}",
		Kind:     media.Image,
	},
}

var defaultSpecialCases = []SpecialCase{
	{
		Label:   "Kanopy",
		Pattern: regexp.MustCompile(`(?i)(?:^|[/.@])kanopy\.com(?:[:/?#]|$)`),
	},
}

// ValidateRules checks that every rule can be substituted: one capture group
// at least, and exactly one placeholder in the template.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if r.Pattern == nil {
			return fmt.Errorf("rule %d (%s): missing pattern", i, ruleName(r))
		}
		if r.Pattern.NumSubexp() < 1 {
			return fmt.Errorf("rule %d (%s): pattern %q has no capture group", i, ruleName(r), r.Pattern)
		}
		if n := strings.Count(r.Template, Placeholder); n != 1 {
			return fmt.Errorf("rule %d (%s): template %q has %d placeholders, want 1", i, ruleName(r), r.Template, n)
		}
	}
	return nil
}

func validateSpecialCases(cases []SpecialCase) error {
	for i, sc := range cases {
		if sc.Label == "" {
			return fmt.Errorf("special case %d: empty label", i)
		}
		if sc.Pattern == nil {
			return fmt.Errorf("special case %d (%s): missing pattern", i, sc.Label)
		}
	}
	return nil
}

func ruleName(r Rule) string {
	if r.Source != "" {
		return r.Source
	}
	return "untagged " + r.Kind.String()
}
