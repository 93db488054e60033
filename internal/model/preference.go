package model

import (
	"time"
)

// PreferenceKey is the fixed storage key for the last applied theme.
const PreferenceKey = "cameronpad-theme"

// Preference records the last theme applied with persistence enabled.
type Preference struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// NewPreference builds the preference record for an applied theme.
func NewPreference(t *Theme, now time.Time) Preference {
	return Preference{
		ID:        t.ID,
		Name:      t.Name,
		Timestamp: now.UnixMilli(),
	}
}

// Time returns the record timestamp.
func (p Preference) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}
