package card

import (
	"time"

	"github.com/google/uuid"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

type Network string

const (
	NetworkVisa       Network = "visa"
	NetworkMastercard Network = "mastercard"
	NetworkAmex       Network = "amex"
	NetworkOther      Network = "other"
)

// Card is a payment card tied to an account. AccountID is a required
// reference (RESTRICT on account deletion); InstitutionID is optional and
// cleared when the issuing institution is removed.
type Card struct {
	ID            string
	AccountID     string
	InstitutionID *string
	LastFour      string
	Network       Network
	ExpMonth      int
	ExpYear       int
	Status        Status
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func New(accountID string, institutionID *string, lastFour string, network Network, expMonth, expYear int) (*Card, error) {
	if accountID == "" {
		return nil, shared.NewValidationError("card", "account_id", "account is required")
	}
	if !validLastFour(lastFour) {
		return nil, shared.NewValidationError("card", "last_four_digits", "last four digits must be exactly four digits")
	}
	switch network {
	case NetworkVisa, NetworkMastercard, NetworkAmex, NetworkOther:
	default:
		return nil, shared.NewValidationError("card", "network", "unknown card network")
	}
	if expMonth < 1 || expMonth > 12 {
		return nil, shared.NewValidationError("card", "exp_month", "expiry month must be between 1 and 12")
	}
	if expYear < 2000 || expYear > 2100 {
		return nil, shared.NewValidationError("card", "exp_year", "expiry year is out of range")
	}

	now := time.Now().UTC()
	return &Card{
		ID:            uuid.New().String(),
		AccountID:     accountID,
		InstitutionID: institutionID,
		LastFour:      lastFour,
		Network:       network,
		ExpMonth:      expMonth,
		ExpYear:       expYear,
		Status:        StatusActive,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func validLastFour(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (c *Card) IsActive() bool {
	return c.Status == StatusActive
}

func (c *Card) Block() {
	c.Status = StatusBlocked
	c.UpdatedAt = time.Now().UTC()
}

func (c *Card) Unblock() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now().UTC()
}

// IsExpired reports whether the card has passed its expiry month.
func (c *Card) IsExpired(now time.Time) bool {
	if c.ExpYear != int(now.Year()) {
		return c.ExpYear < now.Year()
	}
	return c.ExpMonth < int(now.Month())
}
