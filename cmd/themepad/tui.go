package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepad/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive theme switcher",
	Long: `Launch the terminal theme switcher. The saved theme is restored on start.

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Apply and remember the selected theme
  p           Preview the selected theme
  r           Reload the theme index
  /           Filter themes
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	bus := app.loader.Bus()
	events := bus.Subscribe()
	defer bus.Unsubscribe(events)

	return tui.Run(app.loader, app.scope, events)
}
