// Package assign implements the mentor assignment engine: a greedy matcher
// that binds unassigned teams to the least-loaded eligible mentor.
package assign

import (
	"context"
	"fmt"
	"sync"

	"github.com/zulandar/teamforge/internal/store"
	"gorm.io/gorm"
)

// Engine runs assignment passes over the persistent store. A pass loads a
// full snapshot of unassigned teams and mentor loads, then applies greedy
// updates sequentially. Passes are serialized by an internal mutex so two
// passes can never observe the same stale mentor counts and double-allocate
// capacity.
type Engine struct {
	db *gorm.DB
	mu sync.Mutex
}

// New creates an Engine bound to a database handle.
func New(db *gorm.DB) (*Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("assign: db is required")
	}
	return &Engine{db: db}, nil
}

// Pass executes one full assignment pass:
//
//  1. Load all unassigned teams, oldest first.
//  2. Load all mentors with their current team counts, least loaded first.
//  3. For each team in order, bind the least-loaded mentor whose tech
//     stack tag equals the team's and whose count is below capacity,
//     bumping the in-memory count so later teams in the same pass see the
//     updated load.
//
// Teams with no eligible mentor are left unassigned; that is not an error.
// Pass fails only on a persistence fault. The in-memory counts never
// outlive the pass.
func (e *Engine) Pass(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	db := e.db.WithContext(ctx)

	teams, err := store.UnassignedTeams(db)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	if len(teams) == 0 {
		return nil
	}

	loads, err := store.MentorLoads(db)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}

	for _, team := range teams {
		// Least-loaded eligible mentor; ties keep the stable order of
		// the initial load (strict < never displaces an earlier mentor
		// with an equal count).
		best := -1
		for i := range loads {
			if loads[i].TechStack != team.TechStack || !loads[i].HasHeadroom() {
				continue
			}
			if best < 0 || loads[i].TeamCount < loads[best].TeamCount {
				best = i
			}
		}
		if best < 0 {
			continue
		}
		if err := store.AssignMentor(db, team.ID, loads[best].ID); err != nil {
			return fmt.Errorf("assign: %w", err)
		}
		loads[best].TeamCount++
	}
	return nil
}

// Status is the read-only assignment aggregate.
type Status struct {
	UnassignedTeams int64 `json:"unassignedTeams"`
	TotalTeams      int64 `json:"totalTeams"`
	TotalMentors    int64 `json:"totalMentors"`
	TotalCapacity   int64 `json:"totalCapacity"`
}

// Status reports unassigned and total team counts, the mentor count, and
// the sum of mentor capacities. No side effects.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	db := e.db.WithContext(ctx)

	total, unassigned, err := store.TeamCounts(db)
	if err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}
	mentors, capacity, err := store.MentorTotals(db)
	if err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}
	return &Status{
		UnassignedTeams: unassigned,
		TotalTeams:      total,
		TotalMentors:    mentors,
		TotalCapacity:   capacity,
	}, nil
}
