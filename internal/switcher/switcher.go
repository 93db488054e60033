// Package switcher builds the theme selection control from the theme index.
package switcher

import (
	"context"
	"errors"

	"github.com/jmylchreest/themepad/internal/model"
)

// Fixed switcher text.
const (
	Placeholder  = "Select a theme..."
	ErrorMessage = "Error loading themes"
)

// ErrNoContainer is returned by Build when there is nothing to build into.
var ErrNoContainer = errors.New("container not found")

// Option is one entry of the selection control.
type Option struct {
	Value string
	Label string
}

// Container receives the built control.
type Container interface {
	// ShowError replaces the container content with a static message.
	ShowError(message string)

	// ShowOptions adds a selection control with the given options.
	ShowOptions(options []Option)
}

// ThemeLoader is the part of theme.Loader the switcher needs.
type ThemeLoader interface {
	ListAvailable(ctx context.Context) ([]model.ThemeSummary, error)
	Load(ctx context.Context, id string) (*model.Theme, error)
}

// Switcher connects a built control to the loader.
type Switcher struct {
	loader  ThemeLoader
	options []Option
}

// Build fetches the index and fills container. On failure the container
// shows ErrorMessage and the index error is returned. A nil container
// returns ErrNoContainer without fetching the index.
func Build(ctx context.Context, loader ThemeLoader, container Container) (*Switcher, error) {
	if container == nil {
		return nil, ErrNoContainer
	}

	themes, err := loader.ListAvailable(ctx)
	if err != nil {
		container.ShowError(ErrorMessage)
		return nil, err
	}

	s := &Switcher{
		loader:  loader,
		options: Options(themes),
	}
	container.ShowOptions(s.options)
	return s, nil
}

// Options returns the placeholder followed by one option per theme.
func Options(themes []model.ThemeSummary) []Option {
	options := make([]Option, 0, len(themes)+1)
	options = append(options, Option{Value: "", Label: Placeholder})
	for _, t := range themes {
		options = append(options, Option{Value: t.ID, Label: t.Label()})
	}
	return options
}

// Options returns the options the control was built with.
func (s *Switcher) Options() []Option {
	return s.options
}

// Select loads the chosen theme. Selecting the placeholder does nothing.
func (s *Switcher) Select(ctx context.Context, value string) (*model.Theme, error) {
	if value == "" {
		return nil, nil
	}
	return s.loader.Load(ctx, value)
}

// Capture is a Container that records what was shown.
type Capture struct {
	Error   string
	Options []Option
}

// ShowError records the message and drops any options.
func (c *Capture) ShowError(message string) {
	c.Error = message
	c.Options = nil
}

// ShowOptions records the options.
func (c *Capture) ShowOptions(options []Option) {
	c.Options = options
}
