package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <theme-id>",
	Short: "Print a theme's stylesheet without remembering it",
	Long: `Fetch and apply a theme without touching the saved preference, then print
the resulting :root stylesheet.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	app.loader.Preview(cmd.Context(), args[0])

	// Preview only logs failures; an empty scope means nothing was applied
	if app.loader.Current() == nil {
		return fmt.Errorf("theme %q could not be previewed", args[0])
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), app.scope.Stylesheet())
	return err
}
