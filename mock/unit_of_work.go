package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
)

// RepositorySet bundles the in-memory repositories behind the
// domain.Repositories contract.
type RepositorySet struct {
	Users        *UserRepository
	Institutions *InstitutionRepository
	AccountTypes *AccountTypeRepository
	Accounts     *AccountRepository
	Cards        *CardRepository
}

func NewRepositorySet() *RepositorySet {
	return &RepositorySet{
		Users:        NewUserRepository(),
		Institutions: NewInstitutionRepository(),
		AccountTypes: NewAccountTypeRepository(),
		Accounts:     NewAccountRepository(),
		Cards:        NewCardRepository(),
	}
}

// View exposes the set behind the domain contract, for wiring services in
// tests.
func (s *RepositorySet) View() domain.Repositories {
	return reposView{set: s}
}

type reposView struct{ set *RepositorySet }

func (v reposView) Users() user.Repository               { return v.set.Users }
func (v reposView) Institutions() institution.Repository { return v.set.Institutions }
func (v reposView) AccountTypes() accounttype.Repository { return v.set.AccountTypes }
func (v reposView) Accounts() account.Repository         { return v.set.Accounts }
func (v reposView) Cards() card.Repository               { return v.set.Cards }

// UnitOfWork mimics transactional semantics over the in-memory stores: the
// state of every store is captured before the closure runs, and restored
// when the closure fails, panics, or the context is cancelled. A scope is
// single-use, like the real one.
type UnitOfWork struct {
	set  *RepositorySet
	mu   sync.Mutex
	used bool

	// BeginErr, when set, fails Execute before the closure runs.
	BeginErr error
	// CommitErr, when set, fails Execute after the closure succeeded and
	// rolls the state back.
	CommitErr error
}

func NewUnitOfWork(set *RepositorySet) *UnitOfWork {
	return &UnitOfWork{set: set}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	u.mu.Lock()
	if u.used {
		u.mu.Unlock()
		return errors.New("unit of work already executed")
	}
	u.used = true
	u.mu.Unlock()

	if u.BeginErr != nil {
		return u.BeginErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	users, usersDel := u.set.Users.snapshot()
	institutions, institutionsDel := u.set.Institutions.snapshot()
	types, typesDel := u.set.AccountTypes.snapshot()
	accounts, accountsDel := u.set.Accounts.snapshot()
	cards, cardsDel := u.set.Cards.snapshot()

	rollback := func() {
		u.set.Users.restore(users, usersDel)
		u.set.Institutions.restore(institutions, institutionsDel)
		u.set.AccountTypes.restore(types, typesDel)
		u.set.Accounts.restore(accounts, accountsDel)
		u.set.Cards.restore(cards, cardsDel)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, reposView{set: u.set}); err != nil {
		rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		rollback()
		return err
	}
	if u.CommitErr != nil {
		rollback()
		return u.CommitErr
	}
	return nil
}

// UnitOfWorkFactory hands out scopes over one shared repository set so
// tests can seed and inspect state across operations.
type UnitOfWorkFactory struct {
	Set *RepositorySet

	// NextBeginErr and NextCommitErr apply to every scope the factory
	// creates afterwards.
	NextBeginErr  error
	NextCommitErr error
}

func NewUnitOfWorkFactory(set *RepositorySet) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{Set: set}
}

func (f *UnitOfWorkFactory) New() domain.UnitOfWork {
	uow := NewUnitOfWork(f.Set)
	uow.BeginErr = f.NextBeginErr
	uow.CommitErr = f.NextCommitErr
	return uow
}

var (
	_ domain.Repositories      = reposView{}
	_ domain.UnitOfWork        = (*UnitOfWork)(nil)
	_ domain.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
