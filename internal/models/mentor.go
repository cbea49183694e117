package models

import "time"

// Mentor is a person who can be assigned teams matching their tech stack.
type Mentor struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	FullName        string `gorm:"size:255;not null"`
	TechStack       string `gorm:"size:255;not null;index"`
	GitHubUsername  string `gorm:"column:github_username;size:255;not null;uniqueIndex"`
	LinkedInURL     string `gorm:"size:255"`
	MaxTeamCapacity int    `gorm:"not null;default:3"`
	CreatedAt       time.Time

	Teams []Team `gorm:"foreignKey:MentorID"`
}
