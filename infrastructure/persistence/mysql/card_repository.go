package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*card.Card, error) {
	var cardPO po.CardPO
	result := r.getDB(ctx).First(&cardPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("card", result.Error)
	}
	return cardPO.ToDomain(), nil
}

func (r *CardRepository) FindByAccountAndLastFour(ctx context.Context, accountID, lastFour string) (*card.Card, error) {
	var cardPO po.CardPO
	result := r.getDB(ctx).First(&cardPO, "account_id = ? AND last_four = ?", accountID, lastFour)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("card", result.Error)
	}
	return cardPO.ToDomain(), nil
}

func (r *CardRepository) applyFilter(db *gorm.DB, f card.Filter) *gorm.DB {
	if f.AccountID != "" {
		db = db.Where("account_id = ?", f.AccountID)
	}
	if f.InstitutionID != "" {
		db = db.Where("institution_id = ?", f.InstitutionID)
	}
	if f.Network != "" {
		db = db.Where("network = ?", string(f.Network))
	}
	if f.Status != "" {
		db = db.Where("status = ?", string(f.Status))
	}
	return db
}

func (r *CardRepository) List(ctx context.Context, f card.Filter, page shared.Page) ([]*card.Card, int64, error) {
	db := r.applyFilter(r.getDB(ctx).Model(&po.CardPO{}), f)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, TranslateError("card", err)
	}

	var cardPOs []po.CardPO
	err := db.Order("created_at DESC, id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&cardPOs).Error
	if err != nil {
		return nil, 0, TranslateError("card", err)
	}

	cards := make([]*card.Card, len(cardPOs))
	for i := range cardPOs {
		cards[i] = cardPOs[i].ToDomain()
	}
	return cards, total, nil
}

func (r *CardRepository) Insert(ctx context.Context, c *card.Card) error {
	if err := r.getDB(ctx).Create(po.FromCardDomain(c)).Error; err != nil {
		return TranslateError("card", err)
	}
	return nil
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	result := r.getDB(ctx).Model(&po.CardPO{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(map[string]interface{}{
			"institution_id": c.InstitutionID,
			"exp_month":      c.ExpMonth,
			"exp_year":       c.ExpYear,
			"status":         string(c.Status),
			"version":        c.Version + 1,
			"updated_at":     c.UpdatedAt,
		})
	if result.Error != nil {
		return TranslateError("card", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.CardPO{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
			return TranslateError("card", err)
		}
		if count == 0 {
			return shared.NewNotFoundError("card")
		}
		return shared.NewConflictError("card", "card was modified concurrently")
	}
	c.Version++
	return nil
}

func (r *CardRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.getDB(ctx).Delete(&po.CardPO{}, "id = ?", id).Error; err != nil {
		return TranslateError("card", err)
	}
	return nil
}

func (r *CardRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.CardPO{}).
		Where("id = ? AND status = ?", id, string(card.StatusActive)).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("card", err)
	}
	return count > 0, nil
}

func (r *CardRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.CardPO{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return 0, TranslateError("card", err)
	}
	return count, nil
}

// ClearInstitution nulls the optional institution reference on every card
// still pointing at it. The dependent cards survive (clear-on-delete). The
// version bump keeps the clear inside the optimistic-lock discipline: a
// writer holding a pre-clear copy fails its version check instead of
// writing the stale reference back.
func (r *CardRepository) ClearInstitution(ctx context.Context, institutionID string) error {
	err := r.getDB(ctx).Model(&po.CardPO{}).
		Where("institution_id = ?", institutionID).
		Updates(map[string]interface{}{
			"institution_id": gorm.Expr("NULL"),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now().UTC(),
		}).Error
	if err != nil {
		return TranslateError("card", err)
	}
	return nil
}

var _ card.Repository = (*CardRepository)(nil)
