package admin

import (
	"errors"
	"strings"
	"testing"

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
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreate_HashesPassword(t *testing.T) {
	db := testDB(t)
	a, err := Create(db, "root@example.com", "Root", "hunter2!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PasswordHash == "hunter2!" {
		t.Fatal("password stored in clear")
	}
	if !strings.HasPrefix(a.PasswordHash, "$2") {
		t.Errorf("hash = %q, want a bcrypt hash", a.PasswordHash)
	}
}

func TestCreate_RequiresEmailAndPassword(t *testing.T) {
	db := testDB(t)
	if _, err := Create(db, "", "Root", "pw"); err == nil {
		t.Fatal("expected error for missing email")
	}
	if _, err := Create(db, "root@example.com", "Root", ""); err == nil {
		t.Fatal("expected error for missing password")
	}
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	if _, err := Create(db, "root@example.com", "Root", "hunter2!"); err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := Authenticate(db, "root@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Email != "root@example.com" {
		t.Errorf("email = %q", a.Email)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	db := testDB(t)
	if _, err := Create(db, "root@example.com", "Root", "hunter2!"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := Authenticate(db, "root@example.com", "nope"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("err = %v, want ErrBadCredentials", err)
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	db := testDB(t)
	if _, err := Authenticate(db, "ghost@example.com", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("err = %v, want ErrBadCredentials", err)
	}
}
