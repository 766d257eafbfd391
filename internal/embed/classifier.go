package embed

import (
	"strings"

	"filmwatch/internal/media"
)

// Classifier applies special cases and the rule table to source URLs.
// It is read-only after construction and safe for concurrent use.
type Classifier struct {
	rules   []Rule
	special []SpecialCase
}

// NewClassifier validates the tables and returns a classifier over copies of them.
func NewClassifier(rules []Rule, special []SpecialCase) (*Classifier, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	if err := validateSpecialCases(special); err != nil {
		return nil, err
	}
	return &Classifier{
		rules:   append([]Rule(nil), rules...),
		special: append([]SpecialCase(nil), special...),
	}, nil
}

var defaultClassifier = mustClassifier(defaultRules, defaultSpecialCases)

func mustClassifier(rules []Rule, special []SpecialCase) *Classifier {
	c, err := NewClassifier(rules, special)
	if err != nil {
		panic("embed: invalid built-in rule table: " + err.Error())
	}
	return c
}

// Default returns the classifier built from the built-in tables.
func Default() *Classifier {
	return defaultClassifier
}

// Rules returns a copy of the rule table in declaration order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// SpecialCases returns a copy of the special-case table.
func (c *Classifier) SpecialCases() []SpecialCase {
	return append([]SpecialCase(nil), c.special...)
}

// Special reports the first special case the URL belongs to.
func (c *Classifier) Special(rawURL string) (SpecialCase, bool) {
	u := strings.TrimSpace(rawURL)
	for _, sc := range c.special {
		if sc.Pattern.MatchString(u) {
			return sc, true
		}
	}
	return SpecialCase{}, false
}

// Classify runs every rule against the trimmed URL and keeps the result of
// the last one that matched. It reports false when no rule matched.
func (c *Classifier) Classify(rawURL string) (media.Classification, bool) {
	u := strings.TrimSpace(rawURL)

	var result media.Classification
	matched := false
	for _, r := range c.rules {
		idx := r.Pattern.FindStringSubmatchIndex(u)
		if idx == nil {
			continue
		}
		result = media.Classification{
			EmbedURL: string(r.Pattern.ExpandString(nil, r.Template, u, idx)),
			Kind:     r.Kind,
			Source:   r.Source,
		}
		matched = true
	}
	return result, matched
}
