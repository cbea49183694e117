package models

import "time"

// TechStack is a selectable technology tag. Matching between teams and
// mentors is by string equality of the tag, not by foreign key.
type TechStack struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
}
