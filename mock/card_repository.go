package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type CardRepository struct {
	mu      sync.RWMutex
	cards   map[string]card.Card
	deleted map[string]bool

	FailWith error
}

func NewCardRepository() *CardRepository {
	return &CardRepository{
		cards:   make(map[string]card.Card),
		deleted: make(map[string]bool),
	}
}

func (r *CardRepository) Seed(c *card.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[c.ID] = *c
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*card.Card, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

func (r *CardRepository) FindByAccountAndLastFour(ctx context.Context, accountID, lastFour string) (*card.Card, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, c := range r.cards {
		if r.deleted[id] {
			continue
		}
		if c.AccountID == accountID && c.LastFour == lastFour {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *CardRepository) List(ctx context.Context, f card.Filter, page shared.Page) ([]*card.Card, int64, error) {
	if r.FailWith != nil {
		return nil, 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []card.Card
	for id, c := range r.cards {
		if r.deleted[id] {
			continue
		}
		if f.AccountID != "" && c.AccountID != f.AccountID {
			continue
		}
		if f.InstitutionID != "" && (c.InstitutionID == nil || *c.InstitutionID != f.InstitutionID) {
			continue
		}
		if f.Network != "" && c.Network != f.Network {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	result := paginate(matched, page)
	out := make([]*card.Card, len(result))
	for i := range result {
		out[i] = &result[i]
	}
	return out, total, nil
}

func (r *CardRepository) Insert(ctx context.Context, c *card.Card) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.cards {
		if !r.deleted[id] && existing.AccountID == c.AccountID && existing.LastFour == c.LastFour {
			return shared.NewConflictError("card", "card already registered for this account")
		}
	}
	r.cards[c.ID] = *c
	return nil
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.cards[c.ID]
	if !ok || r.deleted[c.ID] {
		return shared.NewNotFoundError("card")
	}
	if stored.Version != c.Version {
		return shared.NewConflictError("card", "card was modified concurrently")
	}
	c.Version++
	r.cards[c.ID] = *c
	return nil
}

func (r *CardRepository) SoftDelete(ctx context.Context, id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[id]; ok {
		r.deleted[id] = true
	}
	return nil
}

func (r *CardRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	return ok && !r.deleted[id] && c.Status == card.StatusActive, nil
}

func (r *CardRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for id, c := range r.cards {
		if !r.deleted[id] && c.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *CardRepository) ClearInstitution(ctx context.Context, institutionID string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.cards {
		if c.InstitutionID != nil && *c.InstitutionID == institutionID {
			c.InstitutionID = nil
			c.Version++
			c.UpdatedAt = time.Now().UTC()
			r.cards[id] = c
		}
	}
	return nil
}

func (r *CardRepository) snapshot() ([]card.Card, map[string]bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshotStore(r.cards, r.deleted)
}

func (r *CardRepository) restore(entities []card.Card, deleted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = make(map[string]card.Card, len(entities))
	for _, c := range entities {
		r.cards[c.ID] = c
	}
	r.deleted = deleted
}

var _ card.Repository = (*CardRepository)(nil)
