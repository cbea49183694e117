package assign

import (
	"context"
	"testing"

	"github.com/zulandar/teamforge/internal/models"
	"github.com/zulandar/teamforge/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Mentor{}, &models.Team{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func addMentor(t *testing.T, db *gorm.DB, stack, github string, capacity int) *models.Mentor {
	t.Helper()
	m := &models.Mentor{
		FullName:        "Mentor " + github,
		TechStack:       stack,
		GitHubUsername:  github,
		MaxTeamCapacity: capacity,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create mentor: %v", err)
	}
	return m
}

func addTeam(t *testing.T, db *gorm.DB, name, stack string) *models.Team {
	t.Helper()
	team := &models.Team{
		TeamName:      name,
		TechStack:     stack,
		LeaderName:    "L", LeaderGitHub: "l-" + name,
		Member1Name: "A", Member1GitHub: "a-" + name,
		Member2Name: "B", Member2GitHub: "b-" + name,
	}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team
}

func mentorOf(t *testing.T, db *gorm.DB, teamID uint) *uint {
	t.Helper()
	team, err := store.TeamByID(db, teamID)
	if err != nil {
		t.Fatalf("load team %d: %v", teamID, err)
	}
	return team.MentorID
}

func TestNew_NilDB(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestPass_EmptyStateSucceeds(t *testing.T) {
	engine, _ := New(testDB(t))
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPass_NoEligibleMentorLeavesTeamUnassigned(t *testing.T) {
	db := testDB(t)
	addMentor(t, db, "Python", "py", 3)
	team := addTeam(t, db, "alpha", "Java")

	engine, _ := New(db)
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("pass should succeed with zero assignments: %v", err)
	}
	if got := mentorOf(t, db, team.ID); got != nil {
		t.Errorf("team assigned to mentor %d, want unassigned", *got)
	}
}

func TestPass_MatchesByStackEquality(t *testing.T) {
	db := testDB(t)
	addMentor(t, db, "Python", "py", 3)
	java := addMentor(t, db, "Java", "jv", 3)
	team := addTeam(t, db, "alpha", "Java")

	engine, _ := New(db)
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mentorOf(t, db, team.ID)
	if got == nil || *got != java.ID {
		t.Errorf("mentor = %v, want %d", got, java.ID)
	}
}

func TestPass_CapacityNeverExceeded(t *testing.T) {
	db := testDB(t)
	m1 := addMentor(t, db, "Java", "ann", 2)
	m2 := addMentor(t, db, "Java", "bob", 1)
	for i := 0; i < 6; i++ {
		addTeam(t, db, string(rune('a'+i)), "Java")
	}

	engine, _ := New(db)
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loads, err := store.MentorLoads(db)
	if err != nil {
		t.Fatalf("loads: %v", err)
	}
	for _, l := range loads {
		if l.TeamCount > l.MaxTeamCapacity {
			t.Errorf("mentor %d count %d exceeds capacity %d", l.ID, l.TeamCount, l.MaxTeamCapacity)
		}
	}

	// 2+1 capacity across 6 teams: exactly 3 assigned, 3 left over.
	_, unassigned, err := store.TeamCounts(db)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if unassigned != 3 {
		t.Errorf("unassigned = %d, want 3", unassigned)
	}
	_ = m1
	_ = m2
}

// The React scenario: two mentors (cap 2 and cap 1), three teams in
// registration order. T1 goes to the first mentor by stable order, T2 to
// the now-least-loaded second mentor, T3 back to the first.
func TestPass_LeastLoadedWithStableTieBreak(t *testing.T) {
	db := testDB(t)
	m1 := addMentor(t, db, "React", "first", 2)
	m2 := addMentor(t, db, "React", "second", 1)
	t1 := addTeam(t, db, "t1", "React")
	t2 := addTeam(t, db, "t2", "React")
	t3 := addTeam(t, db, "t3", "React")

	engine, _ := New(db)
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mentorOf(t, db, t1.ID); got == nil || *got != m1.ID {
		t.Errorf("T1 mentor = %v, want %d (tie at count 0, stable order)", got, m1.ID)
	}
	if got := mentorOf(t, db, t2.ID); got == nil || *got != m2.ID {
		t.Errorf("T2 mentor = %v, want %d (least loaded)", got, m2.ID)
	}
	if got := mentorOf(t, db, t3.ID); got == nil || *got != m1.ID {
		t.Errorf("T3 mentor = %v, want %d (only headroom left)", got, m1.ID)
	}

	loads, _ := store.MentorLoads(db)
	for _, l := range loads {
		want := map[uint]int{m1.ID: 2, m2.ID: 1}[l.ID]
		if l.TeamCount != want {
			t.Errorf("mentor %d count = %d, want %d", l.ID, l.TeamCount, want)
		}
	}
}

// The Java scenario: one mentor with capacity 1 and two teams registered in
// sequence, each triggering a full pass.
func TestPass_SequentialPassesRespectCapacity(t *testing.T) {
	db := testDB(t)
	m := addMentor(t, db, "Java", "solo", 1)
	engine, _ := New(db)
	ctx := context.Background()

	t1 := addTeam(t, db, "first", "Java")
	if err := engine.Pass(ctx); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	t2 := addTeam(t, db, "second", "Java")
	if err := engine.Pass(ctx); err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if got := mentorOf(t, db, t1.ID); got == nil || *got != m.ID {
		t.Errorf("first team mentor = %v, want %d", got, m.ID)
	}
	if got := mentorOf(t, db, t2.ID); got != nil {
		t.Errorf("second team mentor = %v, want unassigned", *got)
	}

	status, err := engine.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.UnassignedTeams != 1 {
		t.Errorf("UnassignedTeams = %d, want 1", status.UnassignedTeams)
	}
}

func TestPass_InMemoryCountBalancesWithinOnePass(t *testing.T) {
	db := testDB(t)
	m1 := addMentor(t, db, "Go", "ann", 5)
	m2 := addMentor(t, db, "Go", "bob", 5)
	for i := 0; i < 4; i++ {
		addTeam(t, db, string(rune('a'+i)), "Go")
	}

	engine, _ := New(db)
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loads, _ := store.MentorLoads(db)
	for _, l := range loads {
		if l.TeamCount != 2 {
			t.Errorf("mentor %d count = %d, want 2 (balanced within the pass)", l.ID, l.TeamCount)
		}
	}
	_ = m1
	_ = m2
}

func TestStatus_Aggregate(t *testing.T) {
	db := testDB(t)
	addMentor(t, db, "Java", "ann", 3)
	addMentor(t, db, "React", "bob", 2)
	addTeam(t, db, "alpha", "Java")
	addTeam(t, db, "beta", "Haskell")

	engine, _ := New(db)
	if err := engine.Pass(context.Background()); err != nil {
		t.Fatalf("pass: %v", err)
	}

	status, err := engine.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Status{UnassignedTeams: 1, TotalTeams: 2, TotalMentors: 2, TotalCapacity: 5}
	if *status != want {
		t.Errorf("status = %+v, want %+v", *status, want)
	}
}
