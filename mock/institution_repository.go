package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type InstitutionRepository struct {
	mu           sync.RWMutex
	institutions map[string]institution.FinancialInstitution
	deleted      map[string]bool

	FailWith error
}

func NewInstitutionRepository() *InstitutionRepository {
	return &InstitutionRepository{
		institutions: make(map[string]institution.FinancialInstitution),
		deleted:      make(map[string]bool),
	}
}

func (r *InstitutionRepository) Seed(fi *institution.FinancialInstitution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.institutions[fi.ID] = *fi
}

func (r *InstitutionRepository) FindByID(ctx context.Context, id string) (*institution.FinancialInstitution, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fi, ok := r.institutions[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	copied := fi
	return &copied, nil
}

func (r *InstitutionRepository) FindByCode(ctx context.Context, code string) (*institution.FinancialInstitution, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, fi := range r.institutions {
		if r.deleted[id] {
			continue
		}
		if fi.Code == code {
			copied := fi
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *InstitutionRepository) List(ctx context.Context, f institution.Filter, page shared.Page) ([]*institution.FinancialInstitution, int64, error) {
	if r.FailWith != nil {
		return nil, 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []institution.FinancialInstitution
	for id, fi := range r.institutions {
		if r.deleted[id] {
			continue
		}
		if f.Code != "" && fi.Code != f.Code {
			continue
		}
		if f.Country != "" && fi.Country != f.Country {
			continue
		}
		if f.Status != "" && fi.Status != f.Status {
			continue
		}
		matched = append(matched, fi)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	result := paginate(matched, page)
	out := make([]*institution.FinancialInstitution, len(result))
	for i := range result {
		out[i] = &result[i]
	}
	return out, total, nil
}

func (r *InstitutionRepository) Insert(ctx context.Context, fi *institution.FinancialInstitution) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.institutions {
		if !r.deleted[id] && existing.Code == fi.Code {
			return shared.NewConflictError("institution", "institution code already exists")
		}
	}
	r.institutions[fi.ID] = *fi
	return nil
}

func (r *InstitutionRepository) Update(ctx context.Context, fi *institution.FinancialInstitution) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.institutions[fi.ID]
	if !ok || r.deleted[fi.ID] {
		return shared.NewNotFoundError("institution")
	}
	if stored.Version != fi.Version {
		return shared.NewConflictError("institution", "institution was modified concurrently")
	}
	fi.Version++
	r.institutions[fi.ID] = *fi
	return nil
}

func (r *InstitutionRepository) SoftDelete(ctx context.Context, id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.institutions[id]; ok {
		r.deleted[id] = true
	}
	return nil
}

func (r *InstitutionRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fi, ok := r.institutions[id]
	return ok && !r.deleted[id] && fi.Status == institution.StatusActive, nil
}

func (r *InstitutionRepository) snapshot() ([]institution.FinancialInstitution, map[string]bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshotStore(r.institutions, r.deleted)
}

func (r *InstitutionRepository) restore(entities []institution.FinancialInstitution, deleted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.institutions = make(map[string]institution.FinancialInstitution, len(entities))
	for _, fi := range entities {
		r.institutions[fi.ID] = fi
	}
	r.deleted = deleted
}

var _ institution.Repository = (*InstitutionRepository)(nil)
