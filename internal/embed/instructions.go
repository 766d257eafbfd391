package embed

import "filmwatch/internal/media"

type helpLink struct {
	label string
	url   string
}

var sourceHelp = map[string]helpLink{
	"Stream": {
		label: "Watch videos on Microsoft Stream",
		url:   "https://docs.microsoft.com/en-us/stream/portal-watch",
	},
}

// Instructions returns the supplementary help for a source tag. pageURL is the
// video's own page, offered as an alternative. Unknown or empty tags yield the
// zero value.
func Instructions(source, pageURL string) media.Instructions {
	help, ok := sourceHelp[source]
	if !ok {
		return media.Instructions{}
	}
	return media.Instructions{
		AlternativeURL: pageURL,
		HelpLabel:      help.label,
		HelpURL:        help.url,
	}
}
