package store

import (
	"fmt"
	"strings"

	"github.com/zulandar/teamforge/internal/models"
	"gorm.io/gorm"
)

// ListTechStacks returns all stack names ordered alphabetically.
func ListTechStacks(db *gorm.DB) ([]string, error) {
	var names []string
	err := db.Model(&models.TechStack{}).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("store: list tech stacks: %w", err)
	}
	return names, nil
}

// AddTechStack inserts a new stack name.
func AddTechStack(db *gorm.DB, name string) error {
	var existing int64
	if err := db.Model(&models.TechStack{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		return fmt.Errorf("store: check tech stack %q: %w", name, err)
	}
	if existing > 0 {
		return ErrStackExists
	}
	if err := db.Create(&models.TechStack{Name: name}).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate") {
			return ErrStackExists
		}
		return fmt.Errorf("store: add tech stack %q: %w", name, err)
	}
	return nil
}

// DeleteTechStack removes a stack name. Refused while any team or mentor
// still carries the tag.
func DeleteTechStack(db *gorm.DB, name string) error {
	var teams, mentors int64
	if err := db.Model(&models.Team{}).Where("tech_stack = ?", name).Count(&teams).Error; err != nil {
		return fmt.Errorf("store: count teams for stack %q: %w", name, err)
	}
	if err := db.Model(&models.Mentor{}).Where("tech_stack = ?", name).Count(&mentors).Error; err != nil {
		return fmt.Errorf("store: count mentors for stack %q: %w", name, err)
	}
	if teams > 0 || mentors > 0 {
		return ErrStackInUse
	}
	if err := db.Where("name = ?", name).Delete(&models.TechStack{}).Error; err != nil {
		return fmt.Errorf("store: delete tech stack %q: %w", name, err)
	}
	return nil
}
