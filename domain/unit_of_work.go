// Package domain ties the aggregate subpackages together with the
// transaction-boundary contracts the application layer depends on.
package domain

import (
	"context"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
)

// Repositories exposes one repository per aggregate, all bound to the same
// transactional scope. A provider obtained inside UnitOfWork.Execute must
// not be retained after the closure returns.
type Repositories interface {
	Users() user.Repository
	Institutions() institution.Repository
	AccountTypes() accounttype.Repository
	Accounts() account.Repository
	Cards() card.Repository
}

// UnitOfWork runs a closure inside a single transaction scope.
//
// The scope is a three-state machine: Open while fn runs, then exactly one
// of Committed or RolledBack. Commit is opt-in: returning a non-nil error,
// panicking, or having the context cancelled all roll the scope back, so a
// bug that aborts an operation partway can never persist a partial change.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// UnitOfWorkFactory builds one scope per application operation. Scopes are
// never shared across concurrent operations.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
