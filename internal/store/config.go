package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/teamforge/internal/models"
	"gorm.io/gorm"
)

// PlatformConfig returns the active (most recently created) configuration
// row, or ErrNotFound when none has been written yet.
func PlatformConfig(db *gorm.DB) (*models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	err := db.Order("created_at DESC, id DESC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load platform config: %w", err)
	}
	return &cfg, nil
}

// SavePlatformConfig writes a new configuration row. The latest row wins,
// so history is retained.
func SavePlatformConfig(db *gorm.DB, token, org string, registrationOpen bool) (*models.PlatformConfig, error) {
	cfg := models.PlatformConfig{
		GitHubToken:      token,
		OrganizationName: org,
		RegistrationOpen: registrationOpen,
	}
	if err := db.Create(&cfg).Error; err != nil {
		return nil, fmt.Errorf("store: save platform config: %w", err)
	}
	return &cfg, nil
}
