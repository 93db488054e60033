// Package tui provides the BubbleTea-based theme switcher.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/themepad/internal/event"
	"github.com/jmylchreest/themepad/internal/model"
	"github.com/jmylchreest/themepad/internal/switcher"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeHelp
)

// ThemeLoader is the part of theme.Loader the TUI drives.
type ThemeLoader interface {
	switcher.ThemeLoader
	Preview(ctx context.Context, id string)
	RestoreSaved(ctx context.Context)
	Current() *model.Theme
}

// Styles exposes applied style variables for the palette.
type Styles interface {
	GetPropertyValue(name string) string
}

// Model is the main TUI model.
type Model struct {
	loader ThemeLoader
	styles Styles
	events <-chan event.Event

	mode Mode

	list list.Model
	help help.Model
	keys KeyMap

	switcher *switcher.Switcher
	current  *model.Theme
	palette  Palette
	width    int
	height   int

	statusMsg string
	statusErr bool
}

// optionItem wraps a switcher option for the list component.
type optionItem struct {
	option switcher.Option
}

func (i optionItem) Title() string { return i.option.Label }

func (i optionItem) Description() string {
	if i.option.Value == "" {
		return "no change"
	}
	return i.option.Value
}

func (i optionItem) FilterValue() string { return i.option.Label + " " + i.option.Value }

// New creates a new TUI model. events may be nil.
func New(loader ThemeLoader, styles Styles, events <-chan event.Event) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Themes"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	m := Model{
		loader: loader,
		styles: styles,
		events: events,
		mode:   ModeList,
		list:   l,
		help:   help.New(),
		keys:   DefaultKeyMap(),
	}
	m.palette = PaletteFrom(styles)
	m.applyPalette()
	return m
}

// Init restores the saved theme and builds the switcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.restore,
		m.build,
		m.waitForEvent,
	)
}

type builtMsg struct {
	switcher *switcher.Switcher
	capture  *switcher.Capture
	err      error
}

type restoredMsg struct{}

type appliedMsg struct {
	theme   *model.Theme
	preview bool
	err     error
}

type themeChangedMsg struct {
	theme *model.Theme
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

func (m Model) build() tea.Msg {
	capture := &switcher.Capture{}
	sw, err := switcher.Build(context.Background(), m.loader, capture)
	return builtMsg{switcher: sw, capture: capture, err: err}
}

func (m Model) restore() tea.Msg {
	m.loader.RestoreSaved(context.Background())
	return restoredMsg{}
}

// waitForEvent blocks until the loader publishes a theme change.
func (m Model) waitForEvent() tea.Msg {
	if m.events == nil {
		return nil
	}
	ev, ok := <-m.events
	if !ok {
		return nil
	}
	return themeChangedMsg{theme: ev.Theme}
}

func (m Model) applyCmd(value string) tea.Cmd {
	sw := m.switcher
	return func() tea.Msg {
		t, err := sw.Select(context.Background(), value)
		return appliedMsg{theme: t, err: err}
	}
}

func (m Model) previewCmd(value string) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		before := loader.Current()
		loader.Preview(context.Background(), value)

		// Preview only logs failures; an unchanged current theme means nothing was applied
		after := loader.Current()
		if after == nil || after == before {
			return appliedMsg{preview: true, err: fmt.Errorf("%s could not be previewed", value)}
		}
		return appliedMsg{theme: after, preview: true}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case builtMsg:
		m.switcher = msg.switcher
		if msg.err != nil {
			m.list.SetItems(nil)
			return m, setStatus(msg.capture.Error, true)
		}
		m.list.SetItems(buildListItems(msg.capture.Options))
		return m, nil

	case restoredMsg:
		m.syncCurrent(m.loader.Current())
		return m, nil

	case appliedMsg:
		if msg.err != nil {
			if msg.preview {
				return m, setStatus("Preview failed: "+msg.err.Error(), true)
			}
			return m, setStatus("Apply failed: "+msg.err.Error(), true)
		}
		if msg.theme == nil {
			return m, nil
		}
		m.syncCurrent(msg.theme)
		if msg.preview {
			return m, setStatus("Previewing "+msg.theme.Name, false)
		}
		return m, setStatus("Applied "+msg.theme.Name, false)

	case themeChangedMsg:
		m.syncCurrent(msg.theme)
		return m, m.waitForEvent

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// syncCurrent records t as current and recolours the UI from the style scope.
func (m *Model) syncCurrent(t *model.Theme) {
	if t == nil {
		return
	}
	m.current = t
	m.palette = PaletteFrom(m.styles)
	m.applyPalette()
}

func (m *Model) applyPalette() {
	m.list.Styles.Title = m.palette.Title
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list consume keys while the filter input is focused
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Apply):
		item, ok := m.list.SelectedItem().(optionItem)
		if !ok || m.switcher == nil || item.option.Value == "" {
			return m, nil
		}
		return m, m.applyCmd(item.option.Value)

	case key.Matches(msg, m.keys.Preview):
		item, ok := m.list.SelectedItem().(optionItem)
		if !ok || item.option.Value == "" {
			return m, nil
		}
		return m, m.previewCmd(item.option.Value)

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.build, setStatus("Reloading themes...", false))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func buildListItems(options []switcher.Option) []list.Item {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = optionItem{option: o}
	}
	return items
}

// View renders the UI.
func (m Model) View() string {
	if m.mode == ModeHelp {
		return m.viewHelp()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.statusMsg != "" {
		style := m.palette.Status
		if m.statusErr {
			style = m.palette.Error
		}
		b.WriteString(style.Render(m.statusMsg))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m Model) viewHeader() string {
	if m.current == nil {
		return m.palette.Muted.Render("No theme applied")
	}
	return fmt.Sprintf("%s %s",
		m.palette.Muted.Render("Current:"),
		m.palette.Accent.Render(m.current.Summary().Label()))
}

func (m Model) viewHelp() string {
	s := m.palette.Title.MarginBottom(1).Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.FullHelpView(m.keys.FullHelp())
	s += "\n\n" + m.palette.Muted.Render("Press ? or esc to return")
	return s
}

// Run starts the TUI.
func Run(loader ThemeLoader, styles Styles, events <-chan event.Event) error {
	p := tea.NewProgram(New(loader, styles, events), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
