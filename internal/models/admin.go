package models

import "time"

// Admin is a platform administrator account.
type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:255"`
	CreatedAt    time.Time
}
