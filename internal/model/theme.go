// Package model defines the core data structures for themepad.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Variable is a single custom style property, e.g. "--bg-color: #101010".
type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Variables is an ordered list of style properties as they appeared in the
// source document. A nil Variables means the document had no css_variables.
type Variables []Variable

// Get returns the last value set for name.
func (vs Variables) Get(name string) (string, bool) {
	for i := len(vs) - 1; i >= 0; i-- {
		if vs[i].Name == name {
			return vs[i].Value, true
		}
	}
	return "", false
}

// Theme is a named collection of style variables published by the theme source.
type Theme struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Category  string    `json:"category" yaml:"category"`
	Variables Variables `json:"-" yaml:"css_variables"`
}

// Summary returns the index entry for this theme.
func (t *Theme) Summary() ThemeSummary {
	return ThemeSummary{ID: t.ID, Name: t.Name, Category: t.Category}
}

// Validate checks that the theme can be applied.
func (t *Theme) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: no theme", ErrInvalidFormat)
	}
	if t.Variables == nil {
		return fmt.Errorf("%w: theme %q has no css_variables", ErrInvalidFormat, t.ID)
	}
	return nil
}

// ThemeSummary is one entry of the theme index.
type ThemeSummary struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Label returns the switcher label, e.g. "Cobalt (dark)".
func (s ThemeSummary) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Category)
}

// FilterValue is used by list filtering in the TUI.
func (s ThemeSummary) FilterValue() string {
	return strings.Join([]string{s.ID, s.Name, s.Category}, " ")
}

// Error kinds surfaced by the fetch and apply pipeline.
var (
	ErrNetwork            = errors.New("network failure")
	ErrNotFound           = fmt.Errorf("%w: theme not found", ErrNetwork)
	ErrParse              = errors.New("malformed theme document")
	ErrInvalidFormat      = errors.New("invalid theme format")
	ErrStorageUnavailable = errors.New("preference storage unavailable")
	ErrStale              = errors.New("stale theme response")
)
