package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

type AccountTypeRepository struct {
	db *gorm.DB
}

func NewAccountTypeRepository(db *gorm.DB) *AccountTypeRepository {
	return &AccountTypeRepository{db: db}
}

func (r *AccountTypeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *AccountTypeRepository) FindByID(ctx context.Context, id string) (*accounttype.AccountType, error) {
	var typePO po.AccountTypePO
	result := r.getDB(ctx).First(&typePO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("account_type", result.Error)
	}
	return typePO.ToDomain(), nil
}

func (r *AccountTypeRepository) FindByCode(ctx context.Context, code string) (*accounttype.AccountType, error) {
	var typePO po.AccountTypePO
	result := r.getDB(ctx).First(&typePO, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("account_type", result.Error)
	}
	return typePO.ToDomain(), nil
}

func (r *AccountTypeRepository) List(ctx context.Context, f accounttype.Filter, page shared.Page) ([]*accounttype.AccountType, int64, error) {
	db := r.getDB(ctx).Model(&po.AccountTypePO{})
	if f.Code != "" {
		db = db.Where("code = ?", f.Code)
	}
	if f.Active != nil {
		db = db.Where("active = ?", *f.Active)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, TranslateError("account_type", err)
	}

	var typePOs []po.AccountTypePO
	err := db.Order("code ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&typePOs).Error
	if err != nil {
		return nil, 0, TranslateError("account_type", err)
	}

	types := make([]*accounttype.AccountType, len(typePOs))
	for i := range typePOs {
		types[i] = typePOs[i].ToDomain()
	}
	return types, total, nil
}

func (r *AccountTypeRepository) Insert(ctx context.Context, t *accounttype.AccountType) error {
	if err := r.getDB(ctx).Create(po.FromAccountTypeDomain(t)).Error; err != nil {
		return TranslateError("account_type", err)
	}
	return nil
}

func (r *AccountTypeRepository) Update(ctx context.Context, t *accounttype.AccountType) error {
	result := r.getDB(ctx).Model(&po.AccountTypePO{}).
		Where("id = ? AND version = ?", t.ID, t.Version).
		Updates(map[string]interface{}{
			"description": t.Description,
			"active":      t.Active,
			"version":     t.Version + 1,
			"updated_at":  t.UpdatedAt,
		})
	if result.Error != nil {
		return TranslateError("account_type", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.AccountTypePO{}).Where("id = ?", t.ID).Count(&count).Error; err != nil {
			return TranslateError("account_type", err)
		}
		if count == 0 {
			return shared.NewNotFoundError("account_type")
		}
		return shared.NewConflictError("account_type", "account type was modified concurrently")
	}
	t.Version++
	return nil
}

func (r *AccountTypeRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.getDB(ctx).Delete(&po.AccountTypePO{}, "id = ?", id).Error; err != nil {
		return TranslateError("account_type", err)
	}
	return nil
}

func (r *AccountTypeRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.AccountTypePO{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("account_type", err)
	}
	return count > 0, nil
}

var _ accounttype.Repository = (*AccountTypeRepository)(nil)
