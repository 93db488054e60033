package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var applyOpts struct {
	printCSS bool
}

var applyCmd = &cobra.Command{
	Use:   "apply <theme-id>",
	Short: "Apply a theme and remember it",
	Long: `Fetch a theme by id, apply its variables and save it as the preferred theme.

Examples:
  # Apply and remember a theme
  themepad apply cobalt-0

  # Pick a theme with fuzzel
  themepad list --format dmenu | fuzzel -d | cut -f1 | xargs themepad apply`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyOpts.printCSS, "css", false,
		"Print the resulting :root stylesheet")
}

func runApply(cmd *cobra.Command, args []string) error {
	t, err := app.loader.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to apply theme %q: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if applyOpts.printCSS {
		_, err = fmt.Fprint(out, app.scope.Stylesheet())
		return err
	}
	_, err = fmt.Fprintf(out, "Applied %s\n", t.Summary().Label())
	return err
}
