package institution

import (
	"context"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type Filter struct {
	Code    string
	Country string
	Status  Status
}

// Repository is the port for institution persistence. Finders return
// (nil, nil) when no matching row exists.
type Repository interface {
	FindByID(ctx context.Context, id string) (*FinancialInstitution, error)
	FindByCode(ctx context.Context, code string) (*FinancialInstitution, error)
	List(ctx context.Context, f Filter, page shared.Page) ([]*FinancialInstitution, int64, error)
	Insert(ctx context.Context, fi *FinancialInstitution) error
	Update(ctx context.Context, fi *FinancialInstitution) error
	SoftDelete(ctx context.Context, id string) error
	ExistsActive(ctx context.Context, id string) (bool, error)
}
