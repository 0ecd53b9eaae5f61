package card

import (
	"context"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Filter struct {
	AccountID     string
	InstitutionID string
	Network       Network
	Status        Status
}

// Repository is the port for card persistence. Finders return (nil, nil)
// when no matching row exists.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Card, error)
	// FindByAccountAndLastFour is the natural-key finder: last four digits
	// are unique per account.
	FindByAccountAndLastFour(ctx context.Context, accountID, lastFour string) (*Card, error)
	List(ctx context.Context, f Filter, page shared.Page) ([]*Card, int64, error)
	Insert(ctx context.Context, c *Card) error
	Update(ctx context.Context, c *Card) error
	SoftDelete(ctx context.Context, id string) error
	ExistsActive(ctx context.Context, id string) (bool, error)

	// CountByAccount backs the RESTRICT policy on account deletion.
	CountByAccount(ctx context.Context, accountID string) (int64, error)
	// ClearInstitution nulls the optional institution reference on all
	// cards pointing at it (clear-on-delete policy).
	ClearInstitution(ctx context.Context, institutionID string) error
}
