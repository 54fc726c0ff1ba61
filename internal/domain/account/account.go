// Package account contains the user profile domain model
package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered user and their profile row
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a user with a fresh identity after validating the inputs
func NewUser(email, name string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	return &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrInvalidEmail
	}
	return nil
}
