package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type AccountTypeRepository struct {
	mu      sync.RWMutex
	types   map[string]accounttype.AccountType
	deleted map[string]bool

	FailWith error
}

func NewAccountTypeRepository() *AccountTypeRepository {
	return &AccountTypeRepository{
		types:   make(map[string]accounttype.AccountType),
		deleted: make(map[string]bool),
	}
}

func (r *AccountTypeRepository) Seed(t *accounttype.AccountType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.ID] = *t
}

func (r *AccountTypeRepository) FindByID(ctx context.Context, id string) (*accounttype.AccountType, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (r *AccountTypeRepository) FindByCode(ctx context.Context, code string) (*accounttype.AccountType, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, t := range r.types {
		if r.deleted[id] {
			continue
		}
		if t.Code == code {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *AccountTypeRepository) List(ctx context.Context, f accounttype.Filter, page shared.Page) ([]*accounttype.AccountType, int64, error) {
	if r.FailWith != nil {
		return nil, 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []accounttype.AccountType
	for id, t := range r.types {
		if r.deleted[id] {
			continue
		}
		if f.Code != "" && t.Code != f.Code {
			continue
		}
		if f.Active != nil && t.Active != *f.Active {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	result := paginate(matched, page)
	out := make([]*accounttype.AccountType, len(result))
	for i := range result {
		out[i] = &result[i]
	}
	return out, total, nil
}

func (r *AccountTypeRepository) Insert(ctx context.Context, t *accounttype.AccountType) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.types {
		if !r.deleted[id] && existing.Code == t.Code {
			return shared.NewConflictError("account_type", "account type code already exists")
		}
	}
	r.types[t.ID] = *t
	return nil
}

func (r *AccountTypeRepository) Update(ctx context.Context, t *accounttype.AccountType) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.types[t.ID]
	if !ok || r.deleted[t.ID] {
		return shared.NewNotFoundError("account_type")
	}
	if stored.Version != t.Version {
		return shared.NewConflictError("account_type", "account type was modified concurrently")
	}
	t.Version++
	r.types[t.ID] = *t
	return nil
}

func (r *AccountTypeRepository) SoftDelete(ctx context.Context, id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[id]; ok {
		r.deleted[id] = true
	}
	return nil
}

func (r *AccountTypeRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]
	return ok && !r.deleted[id] && t.Active, nil
}

func (r *AccountTypeRepository) snapshot() ([]accounttype.AccountType, map[string]bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshotStore(r.types, r.deleted)
}

func (r *AccountTypeRepository) restore(entities []accounttype.AccountType, deleted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]accounttype.AccountType, len(entities))
	for _, t := range entities {
		r.types[t.ID] = t
	}
	r.deleted = deleted
}

var _ accounttype.Repository = (*AccountTypeRepository)(nil)
