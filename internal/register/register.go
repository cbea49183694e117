// Package register implements the team-registration orchestrator: it
// couples the team insert with an assignment pass and repository
// provisioning, compensating with a delete when provisioning fails.
package register

import (
	"context"
	"errors"
	"fmt"

	"github.com/zulandar/teamforge/internal/assign"
	"github.com/zulandar/teamforge/internal/models"
	"github.com/zulandar/teamforge/internal/notify"
	"github.com/zulandar/teamforge/internal/provision"
	"github.com/zulandar/teamforge/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrRegistrationClosed is returned while the registration gate in
	// the platform configuration is off. Nothing is written.
	ErrRegistrationClosed = errors.New("register: registration is closed")

	// ErrConfigIncomplete is returned when the provisioning credential or
	// organization is missing. Nothing is written and the assignment
	// engine is never invoked.
	ErrConfigIncomplete = errors.New("register: platform configuration incomplete")

	// ErrNoEligibleMentor is returned when the pass left the team
	// unassigned. The team row is retained so an administrator can
	// assign manually later.
	ErrNoEligibleMentor = errors.New("register: no suitable mentor available")
)

// ProvisionError reports a failed repository-provisioning call. The team
// row has already been deleted (compensation) by the time this is returned.
type ProvisionError struct {
	Err error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("register: repository provisioning failed: %v", e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// provisioner is the slice of the Provisioner used here, as an interface
// for test doubles.
type provisioner interface {
	Provision(ctx context.Context, req provision.Request) (*provision.Result, error)
}

// Orchestrator coordinates team registration.
type Orchestrator struct {
	db       *gorm.DB
	engine   *assign.Engine
	prov     provisioner
	notifier notify.Notifier
	log      *zap.Logger
}

// Opts holds dependencies for creating an Orchestrator.
type Opts struct {
	DB          *gorm.DB
	Engine      *assign.Engine
	Provisioner provisioner
	Notifier    notify.Notifier // optional
	Logger      *zap.Logger     // optional
}

// New creates an Orchestrator.
func New(opts Opts) (*Orchestrator, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("register: db is required")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("register: assignment engine is required")
	}
	if opts.Provisioner == nil {
		return nil, fmt.Errorf("register: provisioner is required")
	}
	o := &Orchestrator{
		db:       opts.DB,
		engine:   opts.Engine,
		prov:     opts.Provisioner,
		notifier: opts.Notifier,
		log:      opts.Logger,
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return o, nil
}

// TeamInput is the registration submission.
type TeamInput struct {
	TeamName     string `json:"teamName"`
	TechStack    string `json:"techStack"`
	PitchDeckURL string `json:"pitchDeckUrl"`

	LeaderName    string `json:"leaderName"`
	LeaderGitHub  string `json:"leaderGithub"`
	Member1Name   string `json:"member1Name"`
	Member1GitHub string `json:"member1Github"`
	Member2Name   string `json:"member2Name"`
	Member2GitHub string `json:"member2Github"`
}

func (in *TeamInput) validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"teamName", in.TeamName},
		{"techStack", in.TechStack},
		{"leaderName", in.LeaderName},
		{"leaderGithub", in.LeaderGitHub},
		{"member1Name", in.Member1Name},
		{"member1Github", in.Member1GitHub},
		{"member2Name", in.Member2Name},
		{"member2Github", in.Member2GitHub},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("register: missing fields: %v", missing)
	}
	return nil
}

// Result is a successful registration.
type Result struct {
	TeamID   uint     `json:"teamId"`
	MentorID uint     `json:"mentorId"`
	RepoURL  string   `json:"repoUrl"`
	Warnings []string `json:"warnings,omitempty"`
}

// Register runs the full registration flow:
//
//  1. Gate on the platform configuration (registration open, credential
//     and organization present).
//  2. Insert the team row with a null mentor reference.
//  3. Run a full assignment pass, never a single-team shortcut, so
//     capacity balancing stays globally consistent.
//  4. Re-read the team; still unassigned means ErrNoEligibleMentor and
//     the row is kept for manual assignment.
//  5. Provision the repository with the member and mentor usernames.
//  6. On provisioning failure, delete the team row and return a
//     *ProvisionError; the registration is undone entirely.
//
// Steps run strictly sequentially; once step 2 commits, the compensating
// delete in step 6 is the only undo path.
func (o *Orchestrator) Register(ctx context.Context, in TeamInput) (*Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := o.db.WithContext(ctx)

	cfg, err := store.PlatformConfig(db)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrConfigIncomplete
	}
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if !cfg.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}
	if !cfg.Complete() {
		return nil, ErrConfigIncomplete
	}

	team := models.Team{
		TeamName:      in.TeamName,
		TechStack:     in.TechStack,
		PitchDeckURL:  in.PitchDeckURL,
		LeaderName:    in.LeaderName,
		LeaderGitHub:  in.LeaderGitHub,
		Member1Name:   in.Member1Name,
		Member1GitHub: in.Member1GitHub,
		Member2Name:   in.Member2Name,
		Member2GitHub: in.Member2GitHub,
	}
	if err := store.CreateTeam(db, &team); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := o.engine.Pass(ctx); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	assigned, err := store.TeamByID(db, team.ID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if assigned.MentorID == nil || assigned.Mentor == nil {
		return nil, ErrNoEligibleMentor
	}

	provResult, err := o.prov.Provision(ctx, provision.Request{
		TeamName:       assigned.TeamName,
		Members:        assigned.MemberGitHubs(),
		MentorUsername: assigned.Mentor.GitHubUsername,
		Token:          cfg.GitHubToken,
		Org:            cfg.OrganizationName,
	})
	if err != nil {
		// Compensation: undo the registration entirely, including the
		// mentor binding, since the row no longer exists.
		if delErr := store.DeleteTeam(db, team.ID); delErr != nil {
			o.log.Error("compensating delete failed",
				zap.Uint("team_id", team.ID),
				zap.Error(delErr))
		}
		return nil, &ProvisionError{Err: err}
	}

	result := &Result{
		TeamID:   team.ID,
		MentorID: *assigned.MentorID,
		RepoURL:  provResult.RepoURL,
		Warnings: provResult.Warnings,
	}

	o.announce(ctx, assigned, result)
	return result, nil
}

// announce posts the registration to chat channels, best-effort.
func (o *Orchestrator) announce(ctx context.Context, team *models.Team, result *Result) {
	if o.notifier == nil {
		return
	}
	ev := notify.RegistrationEvent(team.TeamName, team.TechStack, team.Mentor.FullName, result.RepoURL)
	if err := o.notifier.Announce(ctx, ev); err != nil {
		o.log.Warn("registration announcement failed",
			zap.String("team", team.TeamName),
			zap.Error(err))
	}
}
