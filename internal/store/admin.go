package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/teamforge/internal/models"
	"gorm.io/gorm"
)

// CreateAdmin inserts a new administrator account.
func CreateAdmin(db *gorm.DB, admin *models.Admin) error {
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("store: create admin %q: %w", admin.Email, err)
	}
	return nil
}

// AdminByEmail loads an administrator account by email.
func AdminByEmail(db *gorm.DB, email string) (*models.Admin, error) {
	var admin models.Admin
	err := db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load admin %q: %w", email, err)
	}
	return &admin, nil
}
