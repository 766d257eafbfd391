package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"filmwatch/internal/embed"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the embed rules in evaluation order",
	Long: `List the embed rules in evaluation order.
When several rules match a URL the last one wins.`,
	Args: cobra.NoArgs,
	RunE: rulesRun,
}

func rulesRun(cmd *cobra.Command, args []string) error {
	c := embed.Default()
	w := cmd.OutOrStdout()

	lines := lo.Map(c.Rules(), func(r embed.Rule, i int) string {
		source := r.Source
		if source == "" {
			source = "-"
		}
		return fmt.Sprintf("%d  %-12s %-6s %s -> %s", i+1, source, r.Kind, r.Pattern, r.Template)
	})
	fmt.Fprintln(w, strings.Join(lines, "\n"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Special cases (never embedded):")
	for _, sc := range c.SpecialCases() {
		fmt.Fprintf(w, "   %-12s %s\n", sc.Label, sc.Pattern)
	}
	return nil
}
