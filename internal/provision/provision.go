// Package provision creates team repositories on GitHub: repo creation in
// the target organization, collaborator setup, and README seeding.
package provision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// settleDelay gives GitHub time to finish auto-init before further
	// writes land. The initial commit is created asynchronously; writing
	// too early races it.
	settleDelay = 2 * time.Second

	// mentorPermission is the collaborator tier for the mentor.
	mentorPermission = "maintain"
	// memberPermission is the collaborator tier for team members.
	memberPermission = "push"

	commitName  = "Team Registration Platform"
	commitEmail = "noreply@example.com"
)

// githubAPI abstracts the GitHub API methods we use, enabling test mocks.
type githubAPI interface {
	CreateRepo(ctx context.Context, org string, repo *github.Repository) (*github.Repository, error)
	AddCollaborator(ctx context.Context, owner, repo, username string, opts *github.RepositoryAddCollaboratorOptions) error
	GetContents(ctx context.Context, owner, repo, path string) (*github.RepositoryContent, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) error
}

// realAPI wraps *github.Client to implement githubAPI.
type realAPI struct {
	client *github.Client
}

func (r *realAPI) CreateRepo(ctx context.Context, org string, repo *github.Repository) (*github.Repository, error) {
	created, _, err := r.client.Repositories.Create(ctx, org, repo)
	return created, err
}

func (r *realAPI) AddCollaborator(ctx context.Context, owner, repo, username string, opts *github.RepositoryAddCollaboratorOptions) error {
	_, _, err := r.client.Repositories.AddCollaborator(ctx, owner, repo, username, opts)
	return err
}

func (r *realAPI) GetContents(ctx context.Context, owner, repo, path string) (*github.RepositoryContent, error) {
	file, _, _, err := r.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	return file, err
}

func (r *realAPI) UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) error {
	_, _, err := r.client.Repositories.UpdateFile(ctx, owner, repo, path, opts)
	return err
}

// newTokenAPI builds a githubAPI authenticated with a bearer token.
func newTokenAPI(ctx context.Context, token string) githubAPI {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &realAPI{client: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// Provisioner creates and seeds team repositories.
type Provisioner struct {
	log    *zap.Logger
	delay  time.Duration
	newAPI func(ctx context.Context, token string) githubAPI
}

// Opts holds parameters for creating a Provisioner.
type Opts struct {
	Logger *zap.Logger
	// SettleDelay overrides the pause after repository creation.
	// Zero keeps the default.
	SettleDelay time.Duration
	// For testing: build a mock API instead of the real GitHub client.
	NewAPI func(ctx context.Context, token string) githubAPI
}

// New creates a Provisioner.
func New(opts Opts) *Provisioner {
	p := &Provisioner{
		log:    opts.Logger,
		delay:  settleDelay,
		newAPI: opts.NewAPI,
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if opts.SettleDelay > 0 {
		p.delay = opts.SettleDelay
	}
	if p.newAPI == nil {
		p.newAPI = newTokenAPI
	}
	return p
}

// Request describes one repository to provision.
type Request struct {
	TeamName string
	// Members are the three member usernames, leader first.
	Members        [3]string
	MentorUsername string
	Token          string
	Org            string
}

// Result is the outcome of a provisioning call. A created repository with
// failed collaborator or README micro-steps is still a success; those
// failures are recorded as warnings so the caller can decide what to do
// about a partially provisioned repository.
type Result struct {
	RepoURL  string
	Warnings []string
}

// FullyProvisioned reports whether every micro-step succeeded.
func (r *Result) FullyProvisioned() bool {
	return len(r.Warnings) == 0
}

// Slug derives a repository name from a team name: lowercased, with every
// character outside [a-z0-9-] replaced by '-'.
func Slug(teamName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(teamName))
}

// Provision creates a public auto-initialized repository for the team, adds
// the three members and the mentor as collaborators, and overwrites the
// auto-generated README with the team document.
//
// Any failure before the repository object exists is a hard error and the
// caller is expected to roll back the registration. Failures in the
// collaborator or README micro-steps are logged, recorded as warnings, and
// do not abort provisioning.
func (p *Provisioner) Provision(ctx context.Context, req Request) (*Result, error) {
	if req.Token == "" || req.Org == "" {
		return nil, fmt.Errorf("provision: token and org are required")
	}
	api := p.newAPI(ctx, req.Token)
	repoName := Slug(req.TeamName)

	repo, err := api.CreateRepo(ctx, req.Org, &github.Repository{
		Name:        github.String(repoName),
		Private:     github.Bool(false),
		AutoInit:    github.Bool(true),
		Description: github.String(fmt.Sprintf("Repository for team %s", req.TeamName)),
	})
	if err != nil {
		return nil, fmt.Errorf("provision: create repository %q in %s: %w", repoName, req.Org, err)
	}

	// Let auto-init finish before touching the repository contents.
	time.Sleep(p.delay)

	result := &Result{RepoURL: repo.GetHTMLURL()}

	for _, username := range req.Members {
		p.addCollaborator(ctx, api, req.Org, repoName, username, memberPermission, result)
	}
	p.addCollaborator(ctx, api, req.Org, repoName, req.MentorUsername, mentorPermission, result)

	p.updateReadme(ctx, api, req, repoName, result)

	return result, nil
}

// addCollaborator invites one collaborator, downgrading failure to a
// warning so one bad username cannot abort provisioning.
func (p *Provisioner) addCollaborator(ctx context.Context, api githubAPI, org, repo, username, permission string, result *Result) {
	err := api.AddCollaborator(ctx, org, repo, username, &github.RepositoryAddCollaboratorOptions{
		Permission: permission,
	})
	if err != nil {
		p.log.Warn("failed to add collaborator",
			zap.String("repo", repo),
			zap.String("username", username),
			zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("add collaborator %s: %v", username, err))
	}
}

// updateReadme fetches the auto-generated README's content SHA and replaces
// the file with the team document. The update call is a compare-and-swap
// against that SHA.
func (p *Provisioner) updateReadme(ctx context.Context, api githubAPI, req Request, repoName string, result *Result) {
	current, err := api.GetContents(ctx, req.Org, repoName, "README.md")
	if err != nil {
		p.log.Warn("failed to fetch README", zap.String("repo", repoName), zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("fetch README: %v", err))
		return
	}

	author := &github.CommitAuthor{
		Name:  github.String(commitName),
		Email: github.String(commitEmail),
	}
	err = api.UpdateFile(ctx, req.Org, repoName, "README.md", &github.RepositoryContentFileOptions{
		Message:   github.String("Initial project setup"),
		Content:   []byte(readmeContent(repoName, req.Members, req.MentorUsername)),
		SHA:       current.SHA,
		Committer: author,
		Author:    author,
	})
	if err != nil {
		p.log.Warn("failed to update README", zap.String("repo", repoName), zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("update README: %v", err))
	}
}

// readmeContent renders the seeded README document.
func readmeContent(repoName string, members [3]string, mentor string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", repoName)
	b.WriteString("## Team Members\n")
	for i, username := range members {
		if i == 0 {
			fmt.Fprintf(&b, "- %s (Team Leader)\n", username)
		} else {
			fmt.Fprintf(&b, "- %s\n", username)
		}
	}
	fmt.Fprintf(&b, "\n## Mentor\n- %s\n", mentor)
	b.WriteString(`
## Project Description
Add your project description here.

## Getting Started
1. Clone the repository
2. Install dependencies
3. Start development

## Development Guidelines
1. Create feature branches
2. Make small, focused commits
3. Write descriptive commit messages
4. Create pull requests for review

## Resources
- [Project Documentation](docs/)
- [Development Setup](docs/setup.md)
- [Contributing Guidelines](CONTRIBUTING.md)
`)
	return b.String()
}
