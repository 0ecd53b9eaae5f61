package accounttype

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

// AccountType classifies accounts (checking, savings, brokerage, ...).
// Code is the natural key.
type AccountType struct {
	ID          string
	Code        string
	Description string
	Active      bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func New(code, description string) (*AccountType, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return nil, shared.NewValidationError("account_type", "code", "code must not be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewValidationError("account_type", "description", "description must not be empty")
	}

	now := time.Now().UTC()
	return &AccountType{
		ID:          uuid.New().String(),
		Code:        code,
		Description: strings.TrimSpace(description),
		Active:      true,
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (t *AccountType) UpdateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewValidationError("account_type", "description", "description must not be empty")
	}
	t.Description = strings.TrimSpace(description)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *AccountType) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now().UTC()
}

func (t *AccountType) Activate() {
	t.Active = true
	t.UpdatedAt = time.Now().UTC()
}
