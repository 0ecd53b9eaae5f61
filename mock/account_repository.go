package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
	deleted  map[string]bool

	FailWith error
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]account.Account),
		deleted:  make(map[string]bool),
	}
}

func (r *AccountRepository) Seed(a *account.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = *a
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	copied := a
	return &copied, nil
}

func (r *AccountRepository) FindByNumber(ctx context.Context, number string) (*account.Account, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, a := range r.accounts {
		if r.deleted[id] {
			continue
		}
		if a.Number == number {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *AccountRepository) List(ctx context.Context, f account.Filter, page shared.Page) ([]*account.Account, int64, error) {
	if r.FailWith != nil {
		return nil, 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []account.Account
	for id, a := range r.accounts {
		if r.deleted[id] {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.InstitutionID != "" && a.InstitutionID != f.InstitutionID {
			continue
		}
		if f.AccountTypeID != "" && a.AccountTypeID != f.AccountTypeID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	result := paginate(matched, page)
	out := make([]*account.Account, len(result))
	for i := range result {
		out[i] = &result[i]
	}
	return out, total, nil
}

func (r *AccountRepository) Insert(ctx context.Context, a *account.Account) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.accounts {
		if !r.deleted[id] && existing.Number == a.Number {
			return shared.NewConflictError("account", "account number already exists")
		}
	}
	r.accounts[a.ID] = *a
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[a.ID]
	if !ok || r.deleted[a.ID] {
		return shared.NewNotFoundError("account")
	}
	if stored.Version != a.Version {
		return shared.NewConflictError("account", "account was modified concurrently")
	}
	a.Version++
	r.accounts[a.ID] = *a
	return nil
}

func (r *AccountRepository) SoftDelete(ctx context.Context, id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		r.deleted[id] = true
	}
	return nil
}

func (r *AccountRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	return ok && !r.deleted[id] && a.Status == account.StatusActive, nil
}

func (r *AccountRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.countWhere(func(a account.Account) bool { return a.UserID == userID })
}

func (r *AccountRepository) CountByInstitution(ctx context.Context, institutionID string) (int64, error) {
	return r.countWhere(func(a account.Account) bool { return a.InstitutionID == institutionID })
}

func (r *AccountRepository) CountByAccountType(ctx context.Context, accountTypeID string) (int64, error) {
	return r.countWhere(func(a account.Account) bool { return a.AccountTypeID == accountTypeID })
}

func (r *AccountRepository) countWhere(match func(account.Account) bool) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for id, a := range r.accounts {
		if !r.deleted[id] && match(a) {
			count++
		}
	}
	return count, nil
}

func (r *AccountRepository) snapshot() ([]account.Account, map[string]bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshotStore(r.accounts, r.deleted)
}

func (r *AccountRepository) restore(entities []account.Account, deleted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]account.Account, len(entities))
	for _, a := range entities {
		r.accounts[a.ID] = a
	}
	r.deleted = deleted
}

var _ account.Repository = (*AccountRepository)(nil)
