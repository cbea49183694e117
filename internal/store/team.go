package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/teamforge/internal/models"
	"gorm.io/gorm"
)

// CreateTeam inserts a new team row. The mentor reference starts null.
func CreateTeam(db *gorm.DB, team *models.Team) error {
	team.MentorID = nil
	if err := db.Create(team).Error; err != nil {
		return fmt.Errorf("store: create team %q: %w", team.TeamName, err)
	}
	return nil
}

// TeamByID loads a team with its mentor preloaded.
func TeamByID(db *gorm.DB, id uint) (*models.Team, error) {
	var team models.Team
	err := db.Preload("Mentor").First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load team %d: %w", id, err)
	}
	return &team, nil
}

// ListTeams returns all teams, newest first, with mentors preloaded.
func ListTeams(db *gorm.DB) ([]models.Team, error) {
	var teams []models.Team
	if err := db.Preload("Mentor").Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("store: list teams: %w", err)
	}
	return teams, nil
}

// UnassignedTeams returns teams without a mentor, oldest first
// (first-registered, first-served).
func UnassignedTeams(db *gorm.DB) ([]models.Team, error) {
	var teams []models.Team
	err := db.Where("mentor_id IS NULL").Order("created_at ASC, id ASC").Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("store: load unassigned teams: %w", err)
	}
	return teams, nil
}

// AssignMentor sets the mentor reference on a team. The update only
// applies while the team is still unassigned; a team is never reassigned.
func AssignMentor(db *gorm.DB, teamID, mentorID uint) error {
	result := db.Model(&models.Team{}).
		Where("id = ? AND mentor_id IS NULL", teamID).
		Update("mentor_id", mentorID)
	if result.Error != nil {
		return fmt.Errorf("store: assign mentor %d to team %d: %w", mentorID, teamID, result.Error)
	}
	return nil
}

// UpdateTeam rewrites a team's editable fields. The mentor reference is
// not touched here.
func UpdateTeam(db *gorm.DB, team *models.Team) error {
	err := db.Model(&models.Team{}).Where("id = ?", team.ID).
		Select("TeamName", "TechStack", "PitchDeckURL",
			"LeaderName", "LeaderGitHub",
			"Member1Name", "Member1GitHub",
			"Member2Name", "Member2GitHub").
		Updates(team).Error
	if err != nil {
		return fmt.Errorf("store: update team %d: %w", team.ID, err)
	}
	return nil
}

// DeleteTeam removes a team row. Used both by administrators and as the
// compensating action after a failed provisioning call.
func DeleteTeam(db *gorm.DB, id uint) error {
	if err := db.Delete(&models.Team{}, id).Error; err != nil {
		return fmt.Errorf("store: delete team %d: %w", id, err)
	}
	return nil
}

// TeamCounts returns total and unassigned team counts.
func TeamCounts(db *gorm.DB) (total, unassigned int64, err error) {
	if err = db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("store: count teams: %w", err)
	}
	if err = db.Model(&models.Team{}).Where("mentor_id IS NULL").Count(&unassigned).Error; err != nil {
		return 0, 0, fmt.Errorf("store: count unassigned teams: %w", err)
	}
	return total, unassigned, nil
}
