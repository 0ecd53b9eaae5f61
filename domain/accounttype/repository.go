package accounttype

import (
	"context"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Filter struct {
	Code   string
	Active *bool
}

// Repository is the port for account-type persistence. Finders return
// (nil, nil) when no matching row exists.
type Repository interface {
	FindByID(ctx context.Context, id string) (*AccountType, error)
	FindByCode(ctx context.Context, code string) (*AccountType, error)
	List(ctx context.Context, f Filter, page shared.Page) ([]*AccountType, int64, error)
	Insert(ctx context.Context, t *AccountType) error
	Update(ctx context.Context, t *AccountType) error
	SoftDelete(ctx context.Context, id string) error
	ExistsActive(ctx context.Context, id string) (bool, error)
}
