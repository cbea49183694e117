package models

import "time"

// PlatformConfig stores instance-level settings. The most recently created
// row is the active configuration.
type PlatformConfig struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	GitHubToken      string `gorm:"size:255"`
	OrganizationName string `gorm:"size:255"`
	RegistrationOpen bool   `gorm:"default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Complete reports whether the provisioning credential and organization
// are both present.
func (c *PlatformConfig) Complete() bool {
	return c.GitHubToken != "" && c.OrganizationName != ""
}
