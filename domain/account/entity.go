package account

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Status string

const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
	StatusClosed Status = "closed"
)

// Account is the central aggregate: a financial account owned by a user,
// held at an institution, classified by an account type. Number is the
// natural key. Balance is exact decimal money.
type Account struct {
	ID            string
	UserID        string
	InstitutionID string
	AccountTypeID string
	Number        string
	Alias         string
	Balance       shared.Money
	Status        Status
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func New(userID, institutionID, accountTypeID, number, alias, currency string) (*Account, error) {
	if userID == "" {
		return nil, shared.NewValidationError("account", "user_id", "owner is required")
	}
	if institutionID == "" {
		return nil, shared.NewValidationError("account", "institution_id", "institution is required")
	}
	if accountTypeID == "" {
		return nil, shared.NewValidationError("account", "account_type_id", "account type is required")
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewValidationError("account", "number", "account number must not be empty")
	}
	if len(currency) != 3 {
		return nil, shared.NewValidationError("account", "currency", "currency must be a three-letter ISO code")
	}

	now := time.Now().UTC()
	return &Account{
		ID:            uuid.New().String(),
		UserID:        userID,
		InstitutionID: institutionID,
		AccountTypeID: accountTypeID,
		Number:        number,
		Alias:         strings.TrimSpace(alias),
		Balance:       shared.ZeroMoney(strings.ToUpper(currency)),
		Status:        StatusActive,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

func (a *Account) UpdateAlias(alias string) {
	a.Alias = strings.TrimSpace(alias)
	a.UpdatedAt = time.Now().UTC()
}

// Credit increases the balance. Currency mismatch is a validation error.
func (a *Account) Credit(m shared.Money) error {
	if !a.IsActive() {
		return shared.NewValidationError("account", "status", "account is not active")
	}
	sum, err := a.Balance.Add(m)
	if err != nil {
		return err
	}
	a.Balance = sum
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Debit decreases the balance. Overdraft is rejected.
func (a *Account) Debit(m shared.Money) error {
	if !a.IsActive() {
		return shared.NewValidationError("account", "status", "account is not active")
	}
	diff, err := a.Balance.Subtract(m)
	if err != nil {
		return err
	}
	if diff.IsNegative() {
		return shared.NewValidationError("account", "balance", "insufficient funds")
	}
	a.Balance = diff
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Account) Freeze() error {
	if a.Status == StatusClosed {
		return shared.NewValidationError("account", "status", "closed accounts cannot be frozen")
	}
	a.Status = StatusFrozen
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Account) Unfreeze() error {
	if a.Status != StatusFrozen {
		return shared.NewValidationError("account", "status", "only frozen accounts can be unfrozen")
	}
	a.Status = StatusActive
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Account) Close() error {
	if !a.Balance.Amount.IsZero() {
		return shared.NewValidationError("account", "balance", "account balance must be zero before closing")
	}
	a.Status = StatusClosed
	a.UpdatedAt = time.Now().UTC()
	return nil
}
