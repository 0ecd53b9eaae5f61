package user

import (
	"context"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

// Filter restricts List. Fields are explicit named parameters so each
// adapter can validate and index every filter it supports.
type Filter struct {
	Email  string
	Active *bool
}

// Repository is the port for user persistence. Finders return (nil, nil)
// when no matching row exists; absence is never an error at this layer.
// Implementations are bound to a transaction scope at construction.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f Filter, page shared.Page) ([]*User, int64, error)
	Insert(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	// SoftDelete is idempotent: deleting an already-deleted id is a no-op.
	SoftDelete(ctx context.Context, id string) error
	// ExistsActive is a cheap existence+status probe for cross-aggregate
	// validation.
	ExistsActive(ctx context.Context, id string) (bool, error)
}
