package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

// User is the account-owner aggregate. Plain detached data: no storage
// session ever escapes a repository into this struct.
type User struct {
	ID        string
	Email     string
	FullName  string
	Active    bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(email, fullName string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("user", "email", "email is not a valid address")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewValidationError("user", "full_name", "full name must not be empty")
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.New().String(),
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		Active:    true,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) UpdateProfile(fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return shared.NewValidationError("user", "full_name", "full name must not be empty")
	}
	u.FullName = strings.TrimSpace(fullName)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now().UTC()
}
