package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/teamforge/internal/models"
	"gorm.io/gorm"
)

// MentorLoad is a mentor together with its current assigned-team count.
type MentorLoad struct {
	ID              uint
	FullName        string
	TechStack       string
	GitHubUsername  string `gorm:"column:github_username"`
	MaxTeamCapacity int
	TeamCount       int
}

// HasHeadroom reports whether the mentor can take another team.
func (m *MentorLoad) HasHeadroom() bool {
	return m.TeamCount < m.MaxTeamCapacity
}

// MentorLoads returns all mentors with their current team counts, ordered
// ascending by count (ties broken by id for a stable order).
func MentorLoads(db *gorm.DB) ([]MentorLoad, error) {
	var loads []MentorLoad
	err := db.Model(&models.Mentor{}).
		Select("mentors.id, mentors.full_name, mentors.tech_stack, mentors.github_username, mentors.max_team_capacity, COUNT(teams.id) AS team_count").
		Joins("LEFT JOIN teams ON teams.mentor_id = mentors.id").
		Group("mentors.id").
		Order("team_count ASC, mentors.id ASC").
		Scan(&loads).Error
	if err != nil {
		return nil, fmt.Errorf("store: load mentor counts: %w", err)
	}
	return loads, nil
}

// CreateMentor inserts a new mentor row.
func CreateMentor(db *gorm.DB, mentor *models.Mentor) error {
	if err := db.Create(mentor).Error; err != nil {
		return fmt.Errorf("store: create mentor %q: %w", mentor.GitHubUsername, err)
	}
	return nil
}

// MentorByID loads a single mentor.
func MentorByID(db *gorm.DB, id uint) (*models.Mentor, error) {
	var mentor models.Mentor
	err := db.First(&mentor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load mentor %d: %w", id, err)
	}
	return &mentor, nil
}

// ListMentors returns all mentors, newest first.
func ListMentors(db *gorm.DB) ([]models.Mentor, error) {
	var mentors []models.Mentor
	if err := db.Order("created_at DESC").Find(&mentors).Error; err != nil {
		return nil, fmt.Errorf("store: list mentors: %w", err)
	}
	return mentors, nil
}

// UpdateMentor rewrites a mentor's editable fields.
func UpdateMentor(db *gorm.DB, mentor *models.Mentor) error {
	err := db.Model(&models.Mentor{}).Where("id = ?", mentor.ID).
		Select("FullName", "TechStack", "GitHubUsername", "LinkedInURL", "MaxTeamCapacity").
		Updates(mentor).Error
	if err != nil {
		return fmt.Errorf("store: update mentor %d: %w", mentor.ID, err)
	}
	return nil
}

// DeleteMentor removes a mentor. Refused while the mentor still has
// assigned teams.
func DeleteMentor(db *gorm.DB, id uint) error {
	var teams int64
	if err := db.Model(&models.Team{}).Where("mentor_id = ?", id).Count(&teams).Error; err != nil {
		return fmt.Errorf("store: count teams for mentor %d: %w", id, err)
	}
	if teams > 0 {
		return ErrMentorHasTeams
	}
	if err := db.Delete(&models.Mentor{}, id).Error; err != nil {
		return fmt.Errorf("store: delete mentor %d: %w", id, err)
	}
	return nil
}

// MentorTotals returns the mentor count and the sum of capacities.
func MentorTotals(db *gorm.DB) (mentors, capacity int64, err error) {
	if err = db.Model(&models.Mentor{}).Count(&mentors).Error; err != nil {
		return 0, 0, fmt.Errorf("store: count mentors: %w", err)
	}
	var sum struct{ Total int64 }
	err = db.Model(&models.Mentor{}).
		Select("COALESCE(SUM(max_team_capacity), 0) AS total").
		Scan(&sum).Error
	if err != nil {
		return 0, 0, fmt.Errorf("store: sum mentor capacity: %w", err)
	}
	return mentors, sum.Total, nil
}
