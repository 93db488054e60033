package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/themepad/internal/model"
)

// templateData provides data for custom templates.
type templateData struct {
	Index int
	Theme model.ThemeSummary
}

func parseTemplate(name, text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return tmpl, nil
}

// PlainFormatter writes one human-readable line per theme.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	tmpl, err := parseTemplate("plain", opts.Template)
	if err != nil {
		return nil, err
	}
	return &PlainFormatter{opts: opts, template: tmpl}, nil
}

// Format writes themes as plain text.
func (f *PlainFormatter) Format(w io.Writer, themes []model.ThemeSummary) error {
	for i, t := range themes {
		if f.template != nil {
			if err := f.template.Execute(w, templateData{Index: i + 1, Theme: t}); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			continue
		}

		var sb strings.Builder
		if f.opts.ShowIndex {
			fmt.Fprintf(&sb, "[%d] ", i+1)
		}
		sb.WriteString(t.Label())
		sb.WriteString("  ")
		sb.WriteString(t.ID)
		sb.WriteString("\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// DmenuFormatter formats themes for dmenu/rofi/fuzzel, id first so the
// selection can be cut and passed to "themepad apply".
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) (*DmenuFormatter, error) {
	tmpl, err := parseTemplate("dmenu", opts.Template)
	if err != nil {
		return nil, err
	}
	return &DmenuFormatter{opts: opts, template: tmpl}, nil
}

// Format writes themes in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, themes []model.ThemeSummary) error {
	sep := f.opts.Separator
	if sep == "" {
		sep = "\t"
	}

	for i, t := range themes {
		var line string
		if f.template != nil {
			var buf strings.Builder
			if err := f.template.Execute(&buf, templateData{Index: i + 1, Theme: t}); err != nil {
				return err
			}
			line = buf.String()
		} else {
			line = strings.Join([]string{t.ID, t.Label()}, sep)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// IDsFormatter outputs just the theme ids, one per line.
type IDsFormatter struct{}

// Format writes theme ids to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, themes []model.ThemeSummary) error {
	for _, t := range themes {
		if _, err := fmt.Fprintln(w, t.ID); err != nil {
			return err
		}
	}
	return nil
}
