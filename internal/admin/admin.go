// Package admin manages administrator accounts.
package admin

import (
	"errors"
	"fmt"

	"github.com/zulandar/teamforge/internal/models"
	"github.com/zulandar/teamforge/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost matches the cost the platform has always used for admin
// password hashes.
const bcryptCost = 12

// ErrBadCredentials is returned when the email or password does not match.
var ErrBadCredentials = errors.New("admin: invalid email or password")

// Create hashes the password and inserts a new administrator account.
func Create(db *gorm.DB, email, name, password string) (*models.Admin, error) {
	if email == "" {
		return nil, fmt.Errorf("admin: email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("admin: password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("admin: hash password: %w", err)
	}
	a := models.Admin{Email: email, Name: name, PasswordHash: string(hash)}
	if err := store.CreateAdmin(db, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Authenticate checks an email/password pair against the stored hash.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func Authenticate(db *gorm.DB, email, password string) (*models.Admin, error) {
	a, err := store.AdminByEmail(db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return a, nil
}
