package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepad/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-apply the saved theme whenever another process changes it",
	Long: `Restore the saved theme, then follow the preference file and re-apply the
saved theme each time another themepad process writes it. Combine with
--stylesheet to keep a CSS file in sync across processes.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// The watcher follows the directory, which may not exist before the first save
	if err := os.MkdirAll(filepath.Dir(app.kv.Path()), 0700); err != nil {
		return fmt.Errorf("failed to create preference directory: %w", err)
	}

	changes := make(chan struct{}, 1)
	watcher, err := store.NewFileWatcher(app.kv.Path(), func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Stop()

	restore := func() {
		app.loader.RestoreSaved(ctx)
		if t := app.loader.Current(); t != nil {
			fmt.Fprintf(out, "Applied %s\n", t.Summary().Label())
		}
	}
	restore()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			// Restoring re-saves the preference, so only act on a different theme
			if !savedThemeChanged() {
				continue
			}
			restore()
		}
	}
}

// savedThemeChanged reports whether the saved preference names a theme other
// than the one currently applied.
func savedThemeChanged() bool {
	pref, err := app.prefs.Load()
	if err != nil || pref == nil {
		return false
	}
	current := app.loader.Current()
	return current == nil || current.ID != pref.ID
}
