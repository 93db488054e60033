// Package output provides output formatters for theme listings.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/themepad/internal/model"
)

// Formatter formats theme listings for output.
type Formatter interface {
	// Format writes formatted themes to the writer.
	Format(w io.Writer, themes []model.ThemeSummary) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
)

// Formats lists the accepted format names.
var Formats = []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatYAML, FormatIDs}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom template for plain/dmenu format
	ShowIndex bool   // Show 1-based index prefix
	Separator string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Separator: "\t",
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatIDs:
		return &IDsFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
	}
}
