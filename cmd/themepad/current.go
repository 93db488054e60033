package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var currentOpts struct {
	json bool
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the saved theme preference",
	Args:  cobra.NoArgs,
	RunE:  runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)

	currentCmd.Flags().BoolVar(&currentOpts.json, "json", false,
		"Print the raw preference record as JSON")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	pref, err := app.prefs.Load()
	if err != nil {
		return fmt.Errorf("failed to read preference: %w", err)
	}

	if currentOpts.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(pref)
	}

	if pref == nil {
		_, err = fmt.Fprintln(out, "No theme saved")
		return err
	}

	_, err = fmt.Fprintf(out, "%s (%s), applied %s\n", pref.Name, pref.ID, humanize.Time(pref.Time()))
	return err
}
