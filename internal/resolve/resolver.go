// Package resolve decides how a film should be presented: embedded, linked,
// special-cased, or not available.
package resolve

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"filmwatch/internal/directory"
	"filmwatch/internal/embed"
	"filmwatch/internal/httputil"
	"filmwatch/internal/logging"
	"filmwatch/internal/media"
)

// DefaultSearchURL is where NoURL presentations point users.
const DefaultSearchURL = "https://www.justwatch.com/au/search"

// Request holds the inputs of one resolution.
type Request struct {
	Title        string
	URL          string // Direct source URL, optional
	DirectoryURL string // JSON directory, optional
}

// Resolver turns requests into presentations. It holds no per-request state
// and is safe for concurrent use.
type Resolver struct {
	classifier *embed.Classifier
	fetcher    directory.Fetcher
	logger     *log.Logger
	searchURL  string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClassifier replaces the built-in rule tables.
func WithClassifier(c *embed.Classifier) Option {
	return func(r *Resolver) {
		if c != nil {
			r.classifier = c
		}
	}
}

// WithSearchURL sets the search page used for films with no known source.
func WithSearchURL(u string) Option {
	return func(r *Resolver) {
		if u != "" {
			r.searchURL = u
		}
	}
}

// New creates a Resolver. fetcher may be nil, in which case directories are
// never consulted.
func New(fetcher directory.Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		classifier: embed.Default(),
		fetcher:    fetcher,
		logger:     logging.Discard(),
		searchURL:  DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the decision tree. Failures below this point are logged and
// folded into the returned presentation; Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, req Request) media.Presentation {
	ref := media.NewReference(req.Title, req.URL)
	if ref.Title == "" {
		r.logger.Error("no film name provided")
		return media.Presentation{Outcome: media.NoTitle}
	}

	if ref.URL == "" {
		ref.URL = r.lookup(ctx, ref.Title, strings.TrimSpace(req.DirectoryURL))
	}

	if ref.URL == "" {
		return media.Presentation{
			Outcome:   media.NoURL,
			Title:     ref.Title,
			SearchURL: httputil.SearchURL(r.searchURL, ref.Title),
		}
	}

	if sc, ok := r.classifier.Special(ref.URL); ok {
		r.logger.Debug("special-cased source", "title", ref.Title, "platform", sc.Label)
		return media.Presentation{
			Outcome:  media.SpecialCased,
			Title:    ref.Title,
			URL:      ref.URL,
			Platform: sc.Label,
		}
	}

	c, ok := r.classifier.Classify(ref.URL)
	if !ok {
		r.logger.Debug("no embed rule matched", "title", ref.Title, "url", ref.URL)
		return media.Presentation{
			Outcome: media.DirectLink,
			Title:   ref.Title,
			URL:     ref.URL,
		}
	}

	p := media.Presentation{
		Outcome:  media.Embedded,
		Title:    ref.Title,
		URL:      ref.URL,
		EmbedURL: c.EmbedURL,
		Kind:     c.Kind,
		Platform: c.Source,
	}
	if in := embed.Instructions(c.Source, ref.URL); !in.IsZero() {
		p.Instructions = &in
	}
	r.logger.Debug("embedded source", "title", ref.Title, "source", c.Source, "embed", c.EmbedURL)
	return p
}

// lookup finds the title's URL in the directory, or returns "" when there is
// no directory or it cannot answer.
func (r *Resolver) lookup(ctx context.Context, title, dirURL string) string {
	url, err := r.findInDirectory(ctx, title, dirURL)
	if err == nil {
		return url
	}

	var cfgErr *ConfigurationError
	var fetchErr *directory.FetchError
	switch {
	case errors.Is(err, errNoSource):
		r.logger.Warn("no film URL or directory defined", "title", title)
	case errors.Is(err, errNoFetcher):
		r.logger.Warn("directory defined but no fetcher configured", "title", title, "directory", dirURL)
	case errors.As(err, &cfgErr):
		r.logger.Warn("ignoring directory", "title", title, "err", err)
	case errors.As(err, &fetchErr):
		r.logger.Warn("directory unavailable", "title", title, "err", err)
	case errors.Is(err, directory.ErrNotListed):
		r.logger.Debug("title not in directory", "title", title, "directory", dirURL)
	default:
		r.logger.Warn("directory lookup failed", "title", title, "err", err)
	}
	return ""
}

var (
	errNoSource  = errors.New("no source configured")
	errNoFetcher = errors.New("no directory fetcher")
)

func (r *Resolver) findInDirectory(ctx context.Context, title, dirURL string) (string, error) {
	if dirURL == "" {
		return "", errNoSource
	}
	if r.fetcher == nil {
		return "", errNoFetcher
	}
	if err := httputil.ValidateURL(dirURL); err != nil {
		return "", &ConfigurationError{Field: "directory", Value: dirURL, Err: err}
	}

	d, err := r.fetcher.Fetch(ctx, dirURL)
	if err != nil {
		return "", err
	}
	e, err := d.Find(title)
	if err != nil {
		return "", err
	}
	return e.URL, nil
}
