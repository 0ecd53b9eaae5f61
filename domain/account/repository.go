package account

import (
	"context"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Filter struct {
	UserID        string
	InstitutionID string
	AccountTypeID string
	Status        Status
}

// Repository is the port for account persistence. Finders return (nil, nil)
// when no matching row exists.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByNumber(ctx context.Context, number string) (*Account, error)
	List(ctx context.Context, f Filter, page shared.Page) ([]*Account, int64, error)
	Insert(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	SoftDelete(ctx context.Context, id string) error
	ExistsActive(ctx context.Context, id string) (bool, error)

	// Dependency counters backing RESTRICT deletion policies.
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByInstitution(ctx context.Context, institutionID string) (int64, error)
	CountByAccountType(ctx context.Context, accountTypeID string) (int64, error)
}
