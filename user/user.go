// Package user stores accounts and their dashboard preferences.
package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preferences controls what a user's dashboard shows.
type Preferences struct {
	FavoriteCoins      []string `json:"favoriteCoins"`
	InvestorType       string   `json:"investorType"`
	ContentPreferences []string `json:"contentPreferences"`
}

// DefaultPreferences returns the preferences applied when a user has
// never saved any.
func DefaultPreferences() Preferences {
	return Preferences{
		FavoriteCoins:      []string{},
		InvestorType:       "moderate",
		ContentPreferences: []string{},
	}
}

// User is an account row.
type User struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Preferences  []byte `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate assigns a uuid primary key when none is set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DecodePreferences returns the stored preferences, falling back to the
// defaults when nothing was ever saved.
func (u *User) DecodePreferences() (Preferences, error) {
	if len(u.Preferences) == 0 {
		return DefaultPreferences(), nil
	}
	var prefs Preferences
	if err := json.Unmarshal(u.Preferences, &prefs); err != nil {
		return Preferences{}, ErrDecodePreferences(err)
	}
	return prefs.withDefaults(), nil
}

func (p Preferences) withDefaults() Preferences {
	defaults := DefaultPreferences()
	if p.FavoriteCoins == nil {
		p.FavoriteCoins = defaults.FavoriteCoins
	}
	if p.InvestorType == "" {
		p.InvestorType = defaults.InvestorType
	}
	if p.ContentPreferences == nil {
		p.ContentPreferences = defaults.ContentPreferences
	}
	return p
}

// Models returns the gorm models this package migrates.
func Models() []any {
	return []any{&User{}}
}
