package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themepad/internal/event"
	"github.com/jmylchreest/themepad/internal/model"
	"github.com/jmylchreest/themepad/internal/style"
	"github.com/jmylchreest/themepad/internal/switcher"
)

type fakeLoader struct {
	mu        sync.Mutex
	themes    []model.ThemeSummary
	listErr   error
	loaded    []string
	previewed []string
	restored  int
	current   *model.Theme

	previewErr bool
}

func (f *fakeLoader) ListAvailable(context.Context) ([]model.ThemeSummary, error) {
	return f.themes, f.listErr
}

func (f *fakeLoader) Load(_ context.Context, id string) (*model.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, id)
	f.current = &model.Theme{ID: id, Name: "Loaded " + id}
	return f.current, nil
}

func (f *fakeLoader) Preview(_ context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previewed = append(f.previewed, id)
	if f.previewErr {
		return
	}
	f.current = &model.Theme{ID: id, Name: "Preview " + id}
}

func (f *fakeLoader) RestoreSaved(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored++
}

func (f *fakeLoader) Current() *model.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

var testThemes = []model.ThemeSummary{
	{ID: "cobalt-0", Name: "Cobalt", Category: "dark"},
	{ID: "paper-1", Name: "Paper", Category: "light"},
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// newBuiltModel returns a sized model with the switcher already built.
func newBuiltModel(t *testing.T, loader *fakeLoader) Model {
	t.Helper()
	m := New(loader, nil, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	updated, _ = m.Update(m.build())
	return updated.(Model)
}

func TestBuild_ListsPlaceholderThenThemes(t *testing.T) {
	m := newBuiltModel(t, &fakeLoader{themes: testThemes})

	items := m.list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, switcher.Placeholder, items[0].(optionItem).Title())
	assert.Equal(t, "Cobalt (dark)", items[1].(optionItem).Title())
	assert.Equal(t, "paper-1", items[2].(optionItem).option.Value)
}

func TestBuild_IndexFailureShowsError(t *testing.T) {
	m := newBuiltModel(t, &fakeLoader{listErr: errors.New("offline")})

	assert.Empty(t, m.list.Items())

	_, cmd := m.Update(builtMsg{capture: &switcher.Capture{Error: switcher.ErrorMessage}, err: errors.New("offline")})
	require.NotNil(t, cmd)
	msg := cmd()
	status, ok := msg.(statusMsg)
	require.True(t, ok)
	assert.Equal(t, switcher.ErrorMessage, status.text)
	assert.True(t, status.isErr)
}

func TestApply_PlaceholderDoesNothing(t *testing.T) {
	loader := &fakeLoader{themes: testThemes}
	m := newBuiltModel(t, loader)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, loader.loaded)
}

func TestApply_LoadsSelectedTheme(t *testing.T) {
	loader := &fakeLoader{themes: testThemes}
	m := newBuiltModel(t, loader)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()

	applied, ok := msg.(appliedMsg)
	require.True(t, ok)
	require.NoError(t, applied.err)
	assert.Equal(t, []string{"cobalt-0"}, loader.loaded)

	updated, _ = m.Update(applied)
	m = updated.(Model)
	require.NotNil(t, m.current)
	assert.Equal(t, "cobalt-0", m.current.ID)
}

func TestPreview_DoesNotLoad(t *testing.T) {
	loader := &fakeLoader{themes: testThemes}
	m := newBuiltModel(t, loader)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)

	_, cmd := m.Update(keyRune('p'))
	require.NotNil(t, cmd)
	applied := cmd().(appliedMsg)

	assert.True(t, applied.preview)
	assert.Equal(t, []string{"cobalt-0"}, loader.previewed)
	assert.Empty(t, loader.loaded)
}

func TestPreview_FailureReportsError(t *testing.T) {
	cobalt := &model.Theme{ID: "cobalt-0", Name: "Cobalt"}
	loader := &fakeLoader{themes: testThemes, current: cobalt, previewErr: true}
	m := newBuiltModel(t, loader)
	m.current = cobalt

	msg := m.previewCmd("paper-1")()
	applied, ok := msg.(appliedMsg)
	require.True(t, ok)
	require.Error(t, applied.err)
	assert.Nil(t, applied.theme)

	updated, cmd := m.Update(applied)
	require.NotNil(t, cmd)
	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, status.isErr)
	assert.Contains(t, status.text, "Preview failed")
	assert.Contains(t, status.text, "paper-1")
	assert.Equal(t, "cobalt-0", updated.(Model).current.ID)
}

func TestPreview_SuccessReportsTheme(t *testing.T) {
	loader := &fakeLoader{themes: testThemes, current: &model.Theme{ID: "cobalt-0", Name: "Cobalt"}}
	m := newBuiltModel(t, loader)

	_, cmd := m.Update(m.previewCmd("paper-1")())
	require.NotNil(t, cmd)
	status := cmd().(statusMsg)
	assert.False(t, status.isErr)
	assert.Equal(t, "Previewing Preview paper-1", status.text)
}

func TestInit_RestoresSavedTheme(t *testing.T) {
	loader := &fakeLoader{current: &model.Theme{ID: "paper-1", Name: "Paper"}}
	m := New(loader, nil, nil)

	msg := m.restore()
	assert.Equal(t, 1, loader.restored)

	updated, _ := m.Update(msg)
	assert.Equal(t, "paper-1", updated.(Model).current.ID)
}

func TestThemeChangedEvent_UpdatesCurrent(t *testing.T) {
	bus := event.NewBus()
	defer bus.Close()
	events := bus.Subscribe()

	m := New(&fakeLoader{}, nil, events)
	bus.Publish(event.Event{Name: event.ThemeChanged, Theme: &model.Theme{ID: "x", Name: "X"}})

	msg := m.waitForEvent()
	updated, cmd := m.Update(msg)

	assert.Equal(t, "x", updated.(Model).current.ID)
	assert.NotNil(t, cmd)
}

func TestWaitForEvent_NilChannel(t *testing.T) {
	assert.Nil(t, New(&fakeLoader{}, nil, nil).waitForEvent())
}

func TestHelpToggle(t *testing.T) {
	m := newBuiltModel(t, &fakeLoader{themes: testThemes})

	updated, _ := m.Update(keyRune('?'))
	m = updated.(Model)
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, updated.(Model).mode)
}

func TestPaletteFrom_UsesThemeColors(t *testing.T) {
	scope := style.NewScope()
	scope.SetProperty("--accent", "#ff8800")
	scope.SetProperty("--muted", "not-a-color")

	p := PaletteFrom(scope)

	assert.Equal(t, lipgloss.Color("#ff8800"), p.Accent.GetForeground())
	assert.Equal(t, lipgloss.Color(defaultMuted), p.Muted.GetForeground())
	assert.Equal(t, lipgloss.Color(defaultTitle), p.Title.GetForeground())
}

func TestPaletteFrom_NilStyles(t *testing.T) {
	p := PaletteFrom(nil)
	assert.Equal(t, lipgloss.Color(defaultAccent), p.Accent.GetForeground())
}

func TestIsTerminalColor(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"#fff", true},
		{"#1e1e2e", true},
		{"12", true},
		{"256", false},
		{"#12345", false},
		{"#gggggg", false},
		{"rgb(0,0,0)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, isTerminalColor(tt.value))
		})
	}
}
