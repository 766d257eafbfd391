// Package render turns presentations into HTML, terminal text, or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"filmwatch/internal/media"
)

// Options controls HTML output.
type Options struct {
	IconURL string
	Width   int
	Height  int
}

const stylesheet = `
:host, body {
  display: block;
  max-width: 800px;
}
.filmWatchingOptions {
  box-shadow: 0 3px 6px rgba(0, 0, 0, 0.16), 0 3px 6px rgba(0, 0, 0, 0.23) !important;
  display: flex;
  flex-direction: row;
  flex-wrap: wrap;
  margin: 1em auto;
  width: 95%;
  border-radius: 1em;
  padding: 1em;
}
.filmWatchingOptionsImage {
  max-width: 100%;
  max-height: 100%;
}
.instructions {
  flex: 6;
  margin-left: 1em;
}
`

const templates = `
{{define "icon"}}<div class="filmWatchingOptionsImage">{{with .Opts.IconURL}}<img src="{{.}}" alt="Film Watching icon" />{{end}}</div>{{end}}

{{define "no_title"}}<div class="filmWatchingOptions">
  {{template "icon" .}}
  <div class="instructions">
    <p>No film name found</p>
  </div>
</div>{{end}}

{{define "no_url"}}<div class="filmWatchingOptions">
  {{template "icon" .}}
  <div class="instructions">
    <h3>{{.P.Title}}</h3>
    <p>We've been unable to provide a copy of <em>{{.P.Title}}</em>.</p>
    <p><a href="{{.P.SearchURL}}" target="_blank">This search</a> may provide pointers to where you can find it online.</p>
  </div>
</div>{{end}}

{{define "special_cased"}}<div class="filmWatchingOptions">
  <div class="filmWatchingOptionsImage"></div>
  <div class="instructions">
    <h3>{{.P.Title}}</h3>
    <p>You can watch <a href="{{.P.URL}}" target="_new"><em>{{.P.Title}}</em> on {{.P.Platform}}</a></p>
  </div>
</div>{{end}}

{{define "embedded"}}<h3>{{.P.Title}}</h3>
<div>{{with .P.Instructions}}
  <p class="gu_addedAdvice" style="font-size:80%">
    <span class="gu_adviceLabel">Alternative video source:</span>
    <span class="gu_adviceValue"><a href="{{.AlternativeURL}}" target="_new">visit video's page</a></span><br />
    <span class="gu_adviceLabel">Help with video:</span>
    <span class="gu_adviceValue"><a href="{{.HelpURL}}">{{.HelpLabel}}</a></span>
  </p>
{{end}}</div>
{{if .Image}}<a class="embedded-media" href="{{.P.EmbedURL}}" target="_blank"><img src="{{.P.EmbedURL}}" /></a>
{{else}}<iframe width="{{.Opts.Width}}" height="{{.Opts.Height}}" class="embedded-media" src="{{.P.EmbedURL}}" frameborder="0" allowfullscreen></iframe>
{{end}}{{end}}

{{define "direct_link"}}<div class="filmWatchingOptions">
  {{template "icon" .}}
  <div class="instructions">
    <h3>{{.P.Title}}</h3>
    <p>Watch <a href="{{.P.URL}}"><em>{{.P.Title}}</em> here</a>.</p>
  </div>
</div>{{end}}

{{define "fragment"}}
{{- if eq .Name "no_title"}}{{template "no_title" .}}
{{- else if eq .Name "no_url"}}{{template "no_url" .}}
{{- else if eq .Name "special_cased"}}{{template "special_cased" .}}
{{- else if eq .Name "embedded"}}{{template "embedded" .}}
{{- else if eq .Name "direct_link"}}{{template "direct_link" .}}
{{- end}}
{{- end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .P.Title}}{{.P.Title}} - {{end}}Watch options</title>
<style>{{.CSS}}</style>
</head>
<body>
{{template "fragment" .}}
</body>
</html>{{end}}
`

// HTML renders presentations as the film watch-options card.
type HTML struct {
	opts Options
	tmpl *template.Template
}

type htmlData struct {
	Name  string
	P     media.Presentation
	Opts  Options
	Image bool
	CSS   template.CSS
}

// NewHTML parses the templates. Zero sizes fall back to 640x480.
func NewHTML(opts Options) *HTML {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	return &HTML{
		opts: opts,
		tmpl: template.Must(template.New("render").Parse(templates)),
	}
}

func (h *HTML) data(p media.Presentation) htmlData {
	return htmlData{
		Name:  p.Outcome.String(),
		P:     p,
		Opts:  h.opts,
		Image: p.Kind == media.Image,
		CSS:   template.CSS(stylesheet),
	}
}

// Fragment writes the markup for one presentation.
func (h *HTML) Fragment(w io.Writer, p media.Presentation) error {
	return h.execute(w, "fragment", p)
}

// Page writes a complete HTML document containing the fragment.
func (h *HTML) Page(w io.Writer, p media.Presentation) error {
	return h.execute(w, "page", p)
}

func (h *HTML) execute(w io.Writer, name string, p media.Presentation) error {
	if h.tmpl.Lookup(p.Outcome.String()) == nil {
		return fmt.Errorf("no template for outcome %q", p.Outcome)
	}
	if err := h.tmpl.ExecuteTemplate(w, name, h.data(p)); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// JSON writes the presentation as indented JSON.
func JSON(w io.Writer, p media.Presentation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
