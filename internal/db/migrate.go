package db

import (
	"fmt"

	"github.com/zulandar/teamforge/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTechStacks are seeded on database initialization.
var DefaultTechStacks = []string{".net", "Java", "PHP", "Python", "Mern", "Unity", "Cross-Platform"}

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Mentor{},
		&models.Team{},
		&models.TechStack{},
		&models.PlatformConfig{},
		&models.Admin{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedTechStacks upserts the given tech stack names.
func SeedTechStacks(db *gorm.DB, names []string) error {
	for _, name := range names {
		stack := models.TechStack{Name: name}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&stack)
		if result.Error != nil {
			return fmt.Errorf("db: seed tech stack %q: %w", name, result.Error)
		}
	}
	return nil
}

// SeedPlatformConfig writes an initial PlatformConfig row when none exists.
func SeedPlatformConfig(db *gorm.DB, org string) error {
	var count int64
	if err := db.Model(&models.PlatformConfig{}).Count(&count).Error; err != nil {
		return fmt.Errorf("db: count platform config: %w", err)
	}
	if count > 0 {
		return nil
	}
	cfg := models.PlatformConfig{OrganizationName: org, RegistrationOpen: true}
	if err := db.Create(&cfg).Error; err != nil {
		return fmt.Errorf("db: seed platform config: %w", err)
	}
	return nil
}
