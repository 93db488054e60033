package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Re-apply the saved theme and print its stylesheet",
	Long: `Re-apply the saved theme preference, if any, and print the resulting :root
stylesheet. A missing or unreadable preference is not an error.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	app.loader.RestoreSaved(cmd.Context())

	if app.loader.Current() == nil {
		logger.Info("no saved theme restored")
		return nil
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), app.scope.Stylesheet())
	return err
}
