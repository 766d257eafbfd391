package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"filmwatch/internal/history"
	"filmwatch/internal/media"
	"filmwatch/internal/opener"
	"filmwatch/internal/render"
	"filmwatch/internal/resolve"
)

var (
	flagURL  string
	flagOpen bool
)

func init() {
	rootCmd.Flags().StringVarP(&flagURL, "url", "u", "", "Source URL of the film (skips the directory)")
	rootCmd.Flags().BoolVarP(&flagOpen, "open", "o", false, "Open the watch link in the browser")
}

// watchRun is the default command: filmwatch <title>
func watchRun(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	logger.Debug("resolving", "title", title, "url", flagURL, "directory", cfg.DirectoryURL)

	return present(cmd.Context(), cmd.OutOrStdout(), resolve.Request{
		Title:        title,
		URL:          flagURL,
		DirectoryURL: cfg.DirectoryURL,
	})
}

// present resolves, records, writes and optionally opens one request.
func present(ctx context.Context, w io.Writer, req resolve.Request) error {
	p := newResolver().Resolve(ctx, req)

	if cfg.History {
		recordLookup(ctx, p)
	}

	if err := write(w, p); err != nil {
		return err
	}

	if flagOpen {
		return openWatchURL(p)
	}
	return nil
}

func write(w io.Writer, p media.Presentation) error {
	switch cfg.Format {
	case "html":
		if err := newHTML().Fragment(w, p); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case "json":
		return render.JSON(w, p)
	default:
		_, err := io.WriteString(w, render.NewText(isTerminal(w)).Render(p))
		return err
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func recordLookup(ctx context.Context, p media.Presentation) {
	store, err := history.OpenDefault()
	if err != nil {
		logger.Warn("history unavailable", "err", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, p); err != nil {
		logger.Warn("history not recorded", "err", err)
	}
}

func openWatchURL(p media.Presentation) error {
	u := p.WatchURL()
	if u == "" {
		return fmt.Errorf("nothing to open for %q", p.Title)
	}

	o := opener.Default()
	if !o.Available() {
		return fmt.Errorf("%s not found in PATH", o.Name())
	}
	logger.Debug("opening", "url", u, "with", o.Name())
	return o.Open(u)
}
