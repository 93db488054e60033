package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/themepad/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByIndex    SortField = "index" // Order published by the source
	SortByName     SortField = "name"
	SortByID       SortField = "id"
	SortByCategory SortField = "category"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions keeps the source order.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByIndex,
		Order: SortAsc,
	}
}

// ParseSortOptions validates user supplied sort options.
func ParseSortOptions(field, order string) (SortOptions, error) {
	opts := DefaultSortOptions()

	switch f := SortField(strings.ToLower(field)); f {
	case "":
	case SortByIndex, SortByName, SortByID, SortByCategory:
		opts.Field = f
	default:
		return opts, fmt.Errorf("unknown sort field %q", field)
	}

	switch o := SortOrder(strings.ToLower(order)); o {
	case "":
	case SortAsc, SortDesc:
		opts.Order = o
	default:
		return opts, fmt.Errorf("unknown sort order %q", order)
	}

	return opts, nil
}

// Sort sorts themes in place. Sorting by index only honours the order.
func Sort(themes []model.ThemeSummary, opts SortOptions) {
	if len(themes) == 0 {
		return
	}

	if opts.Field == SortByIndex || opts.Field == "" {
		if opts.Order == SortDesc {
			for i, j := 0, len(themes)-1; i < j; i, j = i+1, j-1 {
				themes[i], themes[j] = themes[j], themes[i]
			}
		}
		return
	}

	sort.SliceStable(themes, func(i, j int) bool {
		a, b := sortKey(themes[i], opts.Field), sortKey(themes[j], opts.Field)
		if opts.Order == SortDesc {
			return a > b
		}
		return a < b
	})
}

func sortKey(t model.ThemeSummary, field SortField) string {
	switch field {
	case SortByID:
		return strings.ToLower(t.ID)
	case SortByCategory:
		return strings.ToLower(t.Category)
	default:
		return strings.ToLower(t.Name)
	}
}
