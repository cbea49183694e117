package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/teamforge/internal/assign"
	"github.com/zulandar/teamforge/internal/register"
	"github.com/zulandar/teamforge/internal/store"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, opts StartOpts) {
	router.GET("/healthz", handleHealth(opts.DB))

	api := router.Group("/api")
	api.POST("/teams", handleRegister(opts.Orchestrator))
	api.GET("/teams", handleTeamList(opts.DB))
	api.POST("/assignments", handleRunPass(opts.Engine))
	api.GET("/assignments", handleStatus(opts.Engine))
	api.GET("/mentors", handleMentorList(opts.DB))
	api.GET("/stacks", handleStackList(opts.DB))
}

func handleHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// handleRegister runs the registration orchestrator and maps its error
// kinds onto HTTP statuses.
func handleRegister(orch *register.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in register.TeamInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		result, err := orch.Register(c.Request.Context(), in)
		if err != nil {
			c.JSON(registerStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// registerStatus maps orchestrator errors onto HTTP status codes.
func registerStatus(err error) int {
	var provErr *register.ProvisionError
	switch {
	case errors.Is(err, register.ErrRegistrationClosed):
		return http.StatusForbidden
	case errors.Is(err, register.ErrConfigIncomplete):
		return http.StatusServiceUnavailable
	case errors.Is(err, register.ErrNoEligibleMentor):
		return http.StatusConflict
	case errors.As(err, &provErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func handleRunPass(engine *assign.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.Pass(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assignment pass failed"})
			return
		}
		status, err := engine.Status(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assignment status failed"})
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func handleStatus(engine *assign.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := engine.Status(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assignment status failed"})
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// teamView is the listing shape for a team, mentor joined in.
type teamView struct {
	ID         uint   `json:"id"`
	TeamName   string `json:"teamName"`
	TechStack  string `json:"techStack"`
	LeaderName string `json:"leaderName"`
	MentorName string `json:"mentorName,omitempty"`
}

func handleTeamList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		teams, err := store.ListTeams(db.WithContext(c.Request.Context()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list teams"})
			return
		}
		views := make([]teamView, 0, len(teams))
		for _, t := range teams {
			v := teamView{
				ID:         t.ID,
				TeamName:   t.TeamName,
				TechStack:  t.TechStack,
				LeaderName: t.LeaderName,
			}
			if t.Mentor != nil {
				v.MentorName = t.Mentor.FullName
			}
			views = append(views, v)
		}
		c.JSON(http.StatusOK, views)
	}
}

// mentorView is the listing shape for a mentor.
type mentorView struct {
	ID              uint   `json:"id"`
	FullName        string `json:"fullName"`
	TechStack       string `json:"techStack"`
	GitHubUsername  string `json:"githubUsername"`
	MaxTeamCapacity int    `json:"maxTeamCapacity"`
}

func handleMentorList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		mentors, err := store.ListMentors(db.WithContext(c.Request.Context()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list mentors"})
			return
		}
		views := make([]mentorView, 0, len(mentors))
		for _, m := range mentors {
			views = append(views, mentorView{
				ID:              m.ID,
				FullName:        m.FullName,
				TechStack:       m.TechStack,
				GitHubUsername:  m.GitHubUsername,
				MaxTeamCapacity: m.MaxTeamCapacity,
			})
		}
		c.JSON(http.StatusOK, views)
	}
}

func handleStackList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stacks, err := store.ListTechStacks(db.WithContext(c.Request.Context()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tech stacks"})
			return
		}
		c.JSON(http.StatusOK, stacks)
	}
}
