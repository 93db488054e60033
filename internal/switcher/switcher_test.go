package switcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themepad/internal/model"
)

type fakeLoader struct {
	themes   []model.ThemeSummary
	indexErr error
	listed   int
	loaded   []string
}

func (f *fakeLoader) ListAvailable(context.Context) ([]model.ThemeSummary, error) {
	f.listed++
	if f.indexErr != nil {
		return nil, f.indexErr
	}
	return f.themes, nil
}

func (f *fakeLoader) Load(_ context.Context, id string) (*model.Theme, error) {
	f.loaded = append(f.loaded, id)
	return &model.Theme{ID: id, Variables: model.Variables{}}, nil
}

func sampleThemes() []model.ThemeSummary {
	return []model.ThemeSummary{
		{ID: "cobalt-0", Name: "Cobalt", Category: "dark"},
		{ID: "paper-1", Name: "Paper", Category: "light"},
	}
}

func TestBuild_PopulatesOptions(t *testing.T) {
	loader := &fakeLoader{themes: sampleThemes()}
	c := &Capture{}

	s, err := Build(context.Background(), loader, c)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Empty(t, c.Error)
	assert.Equal(t, []Option{
		{Value: "", Label: Placeholder},
		{Value: "cobalt-0", Label: "Cobalt (dark)"},
		{Value: "paper-1", Label: "Paper (light)"},
	}, c.Options)
	assert.Equal(t, c.Options, s.Options())
}

func TestBuild_IndexFailureShowsError(t *testing.T) {
	indexErr := errors.New("boom")
	loader := &fakeLoader{indexErr: indexErr}
	c := &Capture{Options: []Option{{Value: "stale"}}}

	s, err := Build(context.Background(), loader, c)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, indexErr)
	assert.Equal(t, ErrorMessage, c.Error)
	assert.Empty(t, c.Options)
}

func TestBuild_NilContainer(t *testing.T) {
	loader := &fakeLoader{themes: sampleThemes()}

	s, err := Build(context.Background(), loader, nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNoContainer)
	assert.Zero(t, loader.listed)
}

func TestSwitcher_SelectLoads(t *testing.T) {
	loader := &fakeLoader{themes: sampleThemes()}
	s, err := Build(context.Background(), loader, &Capture{})
	require.NoError(t, err)

	theme, err := s.Select(context.Background(), "paper-1")
	require.NoError(t, err)
	assert.Equal(t, "paper-1", theme.ID)

	theme, err = s.Select(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, theme)

	assert.Equal(t, []string{"paper-1"}, loader.loaded)
}

func TestHTMLContainer_Options(t *testing.T) {
	c := NewHTMLContainer("themes")
	_, err := Build(context.Background(), &fakeLoader{themes: sampleThemes()}, c)
	require.NoError(t, err)

	html := string(c.HTML())
	assert.True(t, strings.HasPrefix(html, `<div id="themes"><select class="theme-switcher"`))
	assert.Equal(t, 3, strings.Count(html, "<option"))
	assert.Contains(t, html, `<option value="">Select a theme...</option>`)
	assert.Contains(t, html, `<option value="cobalt-0">Cobalt (dark)</option>`)
}

func TestHTMLContainer_ErrorOnly(t *testing.T) {
	c := NewHTMLContainer("themes")
	c.ShowOptions([]Option{{Value: "old", Label: "Old"}})

	_, err := Build(context.Background(), &fakeLoader{indexErr: errors.New("down")}, c)
	require.Error(t, err)

	assert.Equal(t, "<p>Error loading themes</p>", string(c.Inner()))
	assert.Equal(t, 0, strings.Count(string(c.HTML()), "<option"))
}

func TestHTMLContainer_EscapesLabels(t *testing.T) {
	c := NewHTMLContainer("x")
	c.ShowOptions(Options([]model.ThemeSummary{{ID: `"><script>`, Name: "<b>Evil</b>", Category: "x"}}))

	html := string(c.Inner())
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>")
}
