package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"filmwatch/internal/directory"
	"filmwatch/internal/httputil"
	"filmwatch/internal/resolve"
	"filmwatch/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick a film from the directory",
	Args:  cobra.NoArgs,
	RunE:  browseRun,
}

func init() {
	browseCmd.Flags().BoolVarP(&flagOpen, "open", "o", false, "Open the watch link in the browser")
}

func browseRun(cmd *cobra.Command, args []string) error {
	if cfg.DirectoryURL == "" {
		return fmt.Errorf("no directory configured (use --directory or directory_url)")
	}
	if err := httputil.ValidateURL(cfg.DirectoryURL); err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("browse needs an interactive terminal")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	d, err := directory.NewHTTPFetcher(httputil.NewClient(cfg.Timeout())).Fetch(ctx, cfg.DirectoryURL)
	cancel()
	if err != nil {
		return err
	}
	logger.Debug("directory loaded", "films", d.Len())

	title, ok, err := tui.Pick(d)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	// The picked entry already carries the URL; skip the second fetch.
	e, _ := d.Lookup(title)
	return present(cmd.Context(), cmd.OutOrStdout(), resolve.Request{
		Title: title,
		URL:   e.URL,
	})
}
