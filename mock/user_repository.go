// Package mock provides in-memory repository and unit-of-work doubles for
// application-service tests. Stores keep soft-deleted ids aside so reads
// exclude them, updates enforce the version check, and the mock unit of
// work snapshots state so a failed scope restores it.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]user.User
	deleted map[string]bool

	// FailWith, when set, is returned by every method. Used to simulate
	// storage failures.
	FailWith error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]user.User),
		deleted: make(map[string]bool),
	}
}

// Seed stores a user directly, bypassing version and validation checks.
func (r *UserRepository) Seed(u *user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, u := range r.users {
		if r.deleted[id] {
			continue
		}
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(ctx context.Context, f user.Filter, page shared.Page) ([]*user.User, int64, error) {
	if r.FailWith != nil {
		return nil, 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []user.User
	for id, u := range r.users {
		if r.deleted[id] {
			continue
		}
		if f.Email != "" && u.Email != f.Email {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	result := paginate(matched, page)
	out := make([]*user.User, len(result))
	for i := range result {
		out[i] = &result[i]
	}
	return out, total, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.users {
		if !r.deleted[id] && existing.Email == u.Email {
			return shared.NewConflictError("user", "email already registered")
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok || r.deleted[u.ID] {
		return shared.NewNotFoundError("user")
	}
	if stored.Version != u.Version {
		return shared.NewConflictError("user", "user was modified concurrently")
	}
	u.Version++
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; ok {
		r.deleted[id] = true
	}
	return nil
}

func (r *UserRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	return ok && !r.deleted[id] && u.Active, nil
}

func (r *UserRepository) snapshot() ([]user.User, map[string]bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshotStore(r.users, r.deleted)
}

func (r *UserRepository) restore(entities []user.User, deleted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]user.User, len(entities))
	for _, u := range entities {
		r.users[u.ID] = u
	}
	r.deleted = deleted
}

var _ user.Repository = (*UserRepository)(nil)
