// Package store is the persistence gateway: parameterized GORM queries
// over mentors, teams, tech stacks, platform configuration, and admins.
// All functions take an explicit *gorm.DB handle so callers can inject
// test databases.
package store

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrMentorHasTeams is returned when deleting a mentor that still
	// has assigned teams.
	ErrMentorHasTeams = errors.New("store: mentor has assigned teams")
	// ErrStackExists is returned when adding a duplicate tech stack.
	ErrStackExists = errors.New("store: tech stack already exists")
	// ErrStackInUse is returned when deleting a tech stack referenced by
	// any team or mentor.
	ErrStackInUse = errors.New("store: tech stack in use")
)
