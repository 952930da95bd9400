package vault

import (
	"time"

	"github.com/google/uuid"

	"github.com/igwenababa1/scbvault/internal/cryptox"
	"github.com/igwenababa1/scbvault/internal/models"
)

// Default demo credentials so the demo has a working login out of the box.
const (
	SeedEmail    = "demo@scbgroup.com"
	SeedPassword = "demo1234"
)

// SeedUser builds the default record created whenever the vault is absent or
// unreadable.
func SeedUser() *models.UserRecord {
	profile := models.Profile{
		FullName: "Demo Client",
		Email:    SeedEmail,
		Phone:    "+44 20 7946 0018",
		Address:  "1 Basinghall Avenue, London",
	}
	return &models.UserRecord{
		ID:           uuid.NewString(),
		Email:        SeedEmail,
		PasswordHash: cryptox.HashPassword([]byte(SeedPassword)),
		Profile:      profile,
		Settings:     DefaultSettings(profile),
		CreatedAt:    time.Now().UTC(),
	}
}

// DefaultSettings returns the preference template new records start from,
// with the given profile overlaid.
func DefaultSettings(p models.Profile) models.Settings {
	return models.Settings{
		Profile: p,
		Preferences: map[string]any{
			"language":      "en",
			"currency":      "USD",
			"theme":         "light",
			"notifications": true,
		},
	}
}
