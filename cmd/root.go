// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"filmwatch/internal/config"
	"filmwatch/internal/directory"
	"filmwatch/internal/httputil"
	"filmwatch/internal/logging"
	"filmwatch/internal/render"
	"filmwatch/internal/resolve"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagDirectory string
	flagFormat    string
	flagDebug     bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var logger *log.Logger

var rootCmd = &cobra.Command{
	Use:   "filmwatch [title...]",
	Short: "Find out how to watch a film",
	Long: `Filmwatch resolves a film title to the best way of watching it:
an embedded player, a platform link, or a search page when no copy is known.
Sources come from --url or from a JSON directory of titles.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              watchRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDirectory, "directory", "D", "", "URL of the JSON film directory")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: text | html | json")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagDirectory != "" {
		cfg.DirectoryURL = flagDirectory
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagDebug {
		cfg.Debug = true
	}
	cfg.Format = strings.ToLower(cfg.Format)

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(os.Stderr, cfg.Debug)
	return nil
}

func newResolver() *resolve.Resolver {
	fetcher := directory.NewHTTPFetcher(httputil.NewClient(cfg.Timeout()))
	return resolve.New(fetcher,
		resolve.WithLogger(logger),
		resolve.WithSearchURL(cfg.SearchURL),
	)
}

func newHTML() *render.HTML {
	return render.NewHTML(render.Options{
		IconURL: cfg.IconURL,
		Width:   cfg.EmbedWidth,
		Height:  cfg.EmbedHeight,
	})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "filmwatch %s\n", Version)
	},
}
