package store

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/themepad/internal/model"
)

// PreferenceStore reads and writes the persisted theme preference.
type PreferenceStore interface {
	// Load returns the stored preference, or nil if none has been saved.
	Load() (*model.Preference, error)

	// Save overwrites the stored preference.
	Save(p model.Preference) error
}

// Preferences stores the preference record as JSON under a fixed KV key.
type Preferences struct {
	kv  KV
	key string
}

// NewPreferences creates a Preferences using model.PreferenceKey.
func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv, key: model.PreferenceKey}
}

// Load returns the stored preference.
// Storage failures wrap model.ErrStorageUnavailable, unparsable records wrap model.ErrParse.
func (p *Preferences) Load() (*model.Preference, error) {
	raw, ok, err := p.kv.GetItem(p.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var pref model.Preference
	if err := json.Unmarshal([]byte(raw), &pref); err != nil {
		return nil, fmt.Errorf("%w: preference %s: %w", model.ErrParse, p.key, err)
	}
	return &pref, nil
}

// Save overwrites the stored preference.
func (p *Preferences) Save(pref model.Preference) error {
	data, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	if err := p.kv.SetItem(p.key, string(data)); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}
