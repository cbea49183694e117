package models

import "time"

// Team is a registered team of three members. MentorID is set at most once
// by the assignment engine and stays null when no eligible mentor exists.
type Team struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	TeamName     string `gorm:"size:255;not null;uniqueIndex"`
	TechStack    string `gorm:"size:255;not null;index"`
	PitchDeckURL string `gorm:"size:255"`

	LeaderName    string `gorm:"size:255;not null"`
	LeaderGitHub  string `gorm:"column:leader_github;size:255;not null"`
	Member1Name   string `gorm:"size:255;not null"`
	Member1GitHub string `gorm:"column:member1_github;size:255;not null"`
	Member2Name   string `gorm:"size:255;not null"`
	Member2GitHub string `gorm:"column:member2_github;size:255;not null"`

	MentorID  *uint `gorm:"index"`
	CreatedAt time.Time

	Mentor *Mentor `gorm:"foreignKey:MentorID"`
}

// MemberGitHubs returns the three member usernames in leader-first order.
func (t *Team) MemberGitHubs() [3]string {
	return [3]string{t.LeaderGitHub, t.Member1GitHub, t.Member2GitHub}
}
