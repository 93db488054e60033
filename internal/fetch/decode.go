package fetch

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jmylchreest/themepad/internal/model"
)

// ParseTheme decodes a theme document.
// css_variables keep their document order. A document without a
// css_variables object yields a theme with nil Variables; callers
// reject it with Theme.Validate before applying.
func ParseTheme(data []byte) (*model.Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: theme is not valid JSON", model.ErrParse)
	}

	root := gjson.ParseBytes(data)
	t := &model.Theme{
		ID:       root.Get("id").String(),
		Name:     root.Get("name").String(),
		Category: root.Get("category").String(),
	}

	vars := root.Get("css_variables")
	if vars.IsObject() {
		t.Variables = model.Variables{}
		vars.ForEach(func(key, value gjson.Result) bool {
			t.Variables = append(t.Variables, model.Variable{
				Name:  key.String(),
				Value: value.String(),
			})
			return true
		})
	}

	return t, nil
}

// ParseIndex decodes the { "themes": [...] } index document.
func ParseIndex(data []byte) ([]model.ThemeSummary, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: index is not valid JSON", model.ErrParse)
	}

	themes := gjson.GetBytes(data, "themes")
	if !themes.IsArray() {
		return nil, fmt.Errorf("%w: index has no themes list", model.ErrInvalidFormat)
	}

	summaries := make([]model.ThemeSummary, 0, len(themes.Array()))
	themes.ForEach(func(_, entry gjson.Result) bool {
		summaries = append(summaries, model.ThemeSummary{
			ID:       entry.Get("id").String(),
			Name:     entry.Get("name").String(),
			Category: entry.Get("category").String(),
		})
		return true
	})

	return summaries, nil
}
