// Package models defines the persisted data model of the vault core.
package models

import "time"

// Profile is the user-facing identity subset, mutable by the owning user only.
type Profile struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Settings is a superset of Profile carrying arbitrary preference data the
// vault treats as opaque payload.
type Settings struct {
	Profile     Profile        `json:"profile"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Clone returns a copy with its own preferences map.
func (s Settings) Clone() Settings {
	c := s
	if s.Preferences != nil {
		prefs := make(map[string]any, len(s.Preferences))
		for k, v := range s.Preferences {
			prefs[k] = v
		}
		c.Preferences = prefs
	}
	return c
}

// UserRecord is a single vault entry.
//
// Invariants:
//   - ID is unique and never reused.
//   - Email is unique case-insensitively within the vault.
//   - Settings.Profile and the top-level Profile are updated together.
//   - CreatedAt is set once at creation.
type UserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Profile      Profile   `json:"profile"`
	Settings     Settings  `json:"settings"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers cannot alias vault-owned state.
// Safe on a nil receiver.
func (u *UserRecord) Clone() *UserRecord {
	if u == nil {
		return nil
	}
	c := *u
	c.Settings = u.Settings.Clone()
	return &c
}
