// Package core provides filtering and sorting of the theme index.
package core

import (
	"strings"

	"github.com/jmylchreest/themepad/internal/model"
)

// FilterOptions specifies criteria for filtering themes.
type FilterOptions struct {
	Category string // Exact match on category, case-insensitive (empty=any)
	Search   string // Substring of id, name or category, case-insensitive
	Limit    int    // Maximum results (0=unlimited)
}

// Filter returns the themes matching opts, keeping index order.
func Filter(themes []model.ThemeSummary, opts FilterOptions) []model.ThemeSummary {
	result := make([]model.ThemeSummary, 0, len(themes))
	term := strings.ToLower(opts.Search)

	for _, t := range themes {
		if opts.Category != "" && !strings.EqualFold(t.Category, opts.Category) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(t.FilterValue()), term) {
			continue
		}
		result = append(result, t)
	}

	return Limit(result, opts.Limit)
}

// Limit truncates themes to at most n entries. n <= 0 means unlimited.
// Apply it after Sort when the limit should follow the sorted order.
func Limit(themes []model.ThemeSummary, n int) []model.ThemeSummary {
	if n > 0 && len(themes) > n {
		return themes[:n]
	}
	return themes
}

// Categories returns the distinct categories in first-seen order.
func Categories(themes []model.ThemeSummary) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, t := range themes {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		categories = append(categories, t.Category)
	}
	return categories
}
