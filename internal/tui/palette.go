package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style variables consulted for each palette role, in order.
var (
	accentVars = []string{"--accent", "--accent-color", "--primary", "--primary-color"}
	titleVars  = []string{"--primary", "--primary-color", "--heading-color", "--accent"}
	mutedVars  = []string{"--muted", "--text-muted", "--secondary", "--secondary-color"}
	errorVars  = []string{"--danger", "--error", "--error-color"}
)

// Fallback ANSI colours when the theme defines none.
const (
	defaultAccent = "10"
	defaultTitle  = "12"
	defaultMuted  = "8"
	defaultStatus = "7"
	defaultError  = "9"
)

// Palette holds the TUI styles derived from the applied theme.
type Palette struct {
	Title  lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PaletteFrom builds a palette from the style variables in styles. styles
// may be nil.
func PaletteFrom(styles Styles) Palette {
	return Palette{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lookupColor(styles, titleVars, defaultTitle)),
		Accent: lipgloss.NewStyle().
			Foreground(lookupColor(styles, accentVars, defaultAccent)),
		Muted: lipgloss.NewStyle().
			Foreground(lookupColor(styles, mutedVars, defaultMuted)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(defaultStatus)),
		Error: lipgloss.NewStyle().
			Foreground(lookupColor(styles, errorVars, defaultError)),
	}
}

// lookupColor returns the first usable colour among names.
func lookupColor(styles Styles, names []string, fallback string) lipgloss.Color {
	if styles != nil {
		for _, name := range names {
			if v := strings.TrimSpace(styles.GetPropertyValue(name)); isTerminalColor(v) {
				return lipgloss.Color(v)
			}
		}
	}
	return lipgloss.Color(fallback)
}

// isTerminalColor reports whether v is a hex colour or an ANSI colour index.
func isTerminalColor(v string) bool {
	if hex, ok := strings.CutPrefix(v, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		_, err := strconv.ParseUint(hex, 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0 && n <= 255
}
