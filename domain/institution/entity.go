package institution

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// FinancialInstitution is a bank or broker accounts can belong to. Code is
// the natural key (e.g. a SWIFT/BIC or an internal short code).
type FinancialInstitution struct {
	ID        string
	Code      string
	Name      string
	Country   string
	Status    Status
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(code, name, country string) (*FinancialInstitution, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return nil, shared.NewValidationError("institution", "code", "code must not be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("institution", "name", "name must not be empty")
	}
	if len(country) != 2 {
		return nil, shared.NewValidationError("institution", "country", "country must be a two-letter ISO code")
	}

	now := time.Now().UTC()
	return &FinancialInstitution{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      strings.TrimSpace(name),
		Country:   strings.ToUpper(country),
		Status:    StatusActive,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (f *FinancialInstitution) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("institution", "name", "name must not be empty")
	}
	f.Name = strings.TrimSpace(name)
	f.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *FinancialInstitution) Deactivate() {
	f.Status = StatusInactive
	f.UpdatedAt = time.Now().UTC()
}

func (f *FinancialInstitution) Activate() {
	f.Status = StatusActive
	f.UpdatedAt = time.Now().UTC()
}

func (f *FinancialInstitution) IsActive() bool {
	return f.Status == StatusActive
}
