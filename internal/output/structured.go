package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themepad/internal/model"
)

// JSONFormatter formats themes as JSON.
type JSONFormatter struct{}

// Format writes themes as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, themes []model.ThemeSummary) error {
	if themes == nil {
		themes = []model.ThemeSummary{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(themes)
}

// YAMLFormatter formats themes as a YAML sequence.
type YAMLFormatter struct{}

// Format writes themes as YAML.
func (f *YAMLFormatter) Format(w io.Writer, themes []model.ThemeSummary) error {
	if themes == nil {
		themes = []model.ThemeSummary{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(themes); err != nil {
		return err
	}
	return encoder.Close()
}
