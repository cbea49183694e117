package store

import (
	"errors"
	"testing"
	"time"

	"github.com/zulandar/teamforge/internal/models"
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
	if err := db.AutoMigrate(
		&models.Mentor{}, &models.Team{}, &models.TechStack{},
		&models.PlatformConfig{}, &models.Admin{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func makeMentor(t *testing.T, db *gorm.DB, name, stack, github string, capacity int) *models.Mentor {
	t.Helper()
	m := &models.Mentor{
		FullName:        name,
		TechStack:       stack,
		GitHubUsername:  github,
		MaxTeamCapacity: capacity,
	}
	if err := CreateMentor(db, m); err != nil {
		t.Fatalf("create mentor: %v", err)
	}
	return m
}

func makeTeam(t *testing.T, db *gorm.DB, name, stack string) *models.Team {
	t.Helper()
	team := &models.Team{
		TeamName:      name,
		TechStack:     stack,
		LeaderName:    "Leader " + name,
		LeaderGitHub:  "lead-" + name,
		Member1Name:   "M1 " + name,
		Member1GitHub: "m1-" + name,
		Member2Name:   "M2 " + name,
		Member2GitHub: "m2-" + name,
	}
	if err := CreateTeam(db, team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team
}

// ---------------------------------------------------------------------------
// teams
// ---------------------------------------------------------------------------

func TestCreateTeam_StartsUnassigned(t *testing.T) {
	db := testDB(t)
	mentorID := uint(7)
	team := &models.Team{
		TeamName: "alpha", TechStack: "Java",
		LeaderName: "a", LeaderGitHub: "a",
		Member1Name: "b", Member1GitHub: "b",
		Member2Name: "c", Member2GitHub: "c",
		MentorID: &mentorID,
	}
	if err := CreateTeam(db, team); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := TeamByID(db, team.ID)
	if err != nil {
		t.Fatalf("load team: %v", err)
	}
	if got.MentorID != nil {
		t.Errorf("MentorID = %v, want nil on creation", *got.MentorID)
	}
}

func TestTeamByID_NotFound(t *testing.T) {
	db := testDB(t)
	if _, err := TeamByID(db, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUnassignedTeams_OldestFirst(t *testing.T) {
	db := testDB(t)
	t1 := makeTeam(t, db, "first", "Java")
	t2 := makeTeam(t, db, "second", "Java")
	t3 := makeTeam(t, db, "third", "Java")

	// Force distinct timestamps in reverse insertion order so the sort
	// is exercised, not just insertion order.
	base := time.Now().Add(-time.Hour)
	db.Model(t3).Update("created_at", base)
	db.Model(t1).Update("created_at", base.Add(time.Minute))
	db.Model(t2).Update("created_at", base.Add(2*time.Minute))

	teams, err := UnassignedTeams(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, team := range teams {
		names = append(names, team.TeamName)
	}
	want := []string{"third", "first", "second"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestAssignMentor_SetOnce(t *testing.T) {
	db := testDB(t)
	m1 := makeMentor(t, db, "Ann", "Java", "ann", 2)
	m2 := makeMentor(t, db, "Bob", "Java", "bob", 2)
	team := makeTeam(t, db, "alpha", "Java")

	if err := AssignMentor(db, team.ID, m1.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// A second assignment must not displace the first.
	if err := AssignMentor(db, team.ID, m2.ID); err != nil {
		t.Fatalf("re-assign: %v", err)
	}

	got, _ := TeamByID(db, team.ID)
	if got.MentorID == nil || *got.MentorID != m1.ID {
		t.Errorf("MentorID = %v, want %d (never reassigned)", got.MentorID, m1.ID)
	}
}

func TestUpdateTeam_LeavesMentorAlone(t *testing.T) {
	db := testDB(t)
	m := makeMentor(t, db, "Ann", "Java", "ann", 3)
	team := makeTeam(t, db, "alpha", "Java")
	if err := AssignMentor(db, team.ID, m.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	team.TeamName = "alpha-renamed"
	team.Member2GitHub = "m2-new"
	team.MentorID = nil // must not be persisted
	if err := UpdateTeam(db, team); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := TeamByID(db, team.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TeamName != "alpha-renamed" || got.Member2GitHub != "m2-new" {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.MentorID == nil || *got.MentorID != m.ID {
		t.Errorf("mentor reference changed: %v", got.MentorID)
	}
}

func TestDeleteTeam_RemovesRow(t *testing.T) {
	db := testDB(t)
	team := makeTeam(t, db, "alpha", "Java")

	if err := DeleteTeam(db, team.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	total, _, err := TeamCounts(db)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 0 {
		t.Errorf("total teams = %d, want 0", total)
	}
}

func TestTeamCounts(t *testing.T) {
	db := testDB(t)
	m := makeMentor(t, db, "Ann", "Java", "ann", 3)
	t1 := makeTeam(t, db, "alpha", "Java")
	makeTeam(t, db, "beta", "Java")

	if err := AssignMentor(db, t1.ID, m.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	total, unassigned, err := TeamCounts(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || unassigned != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", total, unassigned)
	}
}

// ---------------------------------------------------------------------------
// mentors
// ---------------------------------------------------------------------------

func TestMentorLoads_CountsAndOrder(t *testing.T) {
	db := testDB(t)
	m1 := makeMentor(t, db, "Ann", "Java", "ann", 3)
	m2 := makeMentor(t, db, "Bob", "React", "bob", 2)

	for _, name := range []string{"alpha", "beta"} {
		team := makeTeam(t, db, name, "Java")
		if err := AssignMentor(db, team.ID, m1.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}

	loads, err := MentorLoads(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loads) != 2 {
		t.Fatalf("len(loads) = %d, want 2", len(loads))
	}
	// Least loaded first.
	if loads[0].ID != m2.ID || loads[0].TeamCount != 0 {
		t.Errorf("loads[0] = %+v, want mentor %d with count 0", loads[0], m2.ID)
	}
	if loads[1].ID != m1.ID || loads[1].TeamCount != 2 {
		t.Errorf("loads[1] = %+v, want mentor %d with count 2", loads[1], m1.ID)
	}
}

func TestMentorLoads_TieBrokenByID(t *testing.T) {
	db := testDB(t)
	m1 := makeMentor(t, db, "Ann", "Java", "ann", 3)
	m2 := makeMentor(t, db, "Bob", "Java", "bob", 1)

	loads, err := MentorLoads(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loads[0].ID != m1.ID || loads[1].ID != m2.ID {
		t.Errorf("tie order = [%d %d], want [%d %d]", loads[0].ID, loads[1].ID, m1.ID, m2.ID)
	}
}

func TestMentorLoad_HasHeadroom(t *testing.T) {
	full := MentorLoad{TeamCount: 2, MaxTeamCapacity: 2}
	if full.HasHeadroom() {
		t.Error("mentor at capacity should have no headroom")
	}
	open := MentorLoad{TeamCount: 1, MaxTeamCapacity: 2}
	if !open.HasHeadroom() {
		t.Error("mentor below capacity should have headroom")
	}
}

func TestUpdateMentor_ChangesCapacity(t *testing.T) {
	db := testDB(t)
	m := makeMentor(t, db, "Ann", "Java", "ann", 3)

	m.MaxTeamCapacity = 5
	m.TechStack = "React"
	if err := UpdateMentor(db, m); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := MentorByID(db, m.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.MaxTeamCapacity != 5 || got.TechStack != "React" {
		t.Errorf("mentor = %+v", got)
	}
}

func TestDeleteMentor_RefusedWithTeams(t *testing.T) {
	db := testDB(t)
	m := makeMentor(t, db, "Ann", "Java", "ann", 3)
	team := makeTeam(t, db, "alpha", "Java")
	if err := AssignMentor(db, team.ID, m.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := DeleteMentor(db, m.ID); !errors.Is(err, ErrMentorHasTeams) {
		t.Errorf("err = %v, want ErrMentorHasTeams", err)
	}
}

func TestDeleteMentor_OK(t *testing.T) {
	db := testDB(t)
	m := makeMentor(t, db, "Ann", "Java", "ann", 3)

	if err := DeleteMentor(db, m.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := MentorByID(db, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestMentorTotals(t *testing.T) {
	db := testDB(t)
	makeMentor(t, db, "Ann", "Java", "ann", 3)
	makeMentor(t, db, "Bob", "React", "bob", 2)

	mentors, capacity, err := MentorTotals(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mentors != 2 || capacity != 5 {
		t.Errorf("totals = (%d, %d), want (2, 5)", mentors, capacity)
	}
}

func TestMentorTotals_Empty(t *testing.T) {
	db := testDB(t)
	mentors, capacity, err := MentorTotals(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mentors != 0 || capacity != 0 {
		t.Errorf("totals = (%d, %d), want (0, 0)", mentors, capacity)
	}
}

// ---------------------------------------------------------------------------
// tech stacks
// ---------------------------------------------------------------------------

func TestAddTechStack_Duplicate(t *testing.T) {
	db := testDB(t)
	if err := AddTechStack(db, "Java"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := AddTechStack(db, "Java"); !errors.Is(err, ErrStackExists) {
		t.Errorf("err = %v, want ErrStackExists", err)
	}
}

func TestDeleteTechStack_InUse(t *testing.T) {
	db := testDB(t)
	if err := AddTechStack(db, "Java"); err != nil {
		t.Fatalf("add: %v", err)
	}
	makeTeam(t, db, "alpha", "Java")

	if err := DeleteTechStack(db, "Java"); !errors.Is(err, ErrStackInUse) {
		t.Errorf("err = %v, want ErrStackInUse", err)
	}
}

func TestDeleteTechStack_OK(t *testing.T) {
	db := testDB(t)
	if err := AddTechStack(db, "Java"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := DeleteTechStack(db, "Java"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names, err := ListTechStacks(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("stacks = %v, want empty", names)
	}
}

func TestListTechStacks_Sorted(t *testing.T) {
	db := testDB(t)
	for _, name := range []string{"React", "Java", "Python"} {
		if err := AddTechStack(db, name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	names, err := ListTechStacks(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Java", "Python", "React"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

// ---------------------------------------------------------------------------
// platform config
// ---------------------------------------------------------------------------

func TestPlatformConfig_NotFound(t *testing.T) {
	db := testDB(t)
	if _, err := PlatformConfig(db); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPlatformConfig_LatestRowWins(t *testing.T) {
	db := testDB(t)
	if _, err := SavePlatformConfig(db, "old-token", "old-org", true); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := SavePlatformConfig(db, "new-token", "new-org", false); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := PlatformConfig(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GitHubToken != "new-token" || cfg.OrganizationName != "new-org" || cfg.RegistrationOpen {
		t.Errorf("cfg = %+v, want latest row", cfg)
	}
}
