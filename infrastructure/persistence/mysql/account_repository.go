package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	var acctPO po.AccountPO
	result := r.getDB(ctx).First(&acctPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("account", result.Error)
	}
	return acctPO.ToDomain(), nil
}

func (r *AccountRepository) FindByNumber(ctx context.Context, number string) (*account.Account, error) {
	var acctPO po.AccountPO
	result := r.getDB(ctx).First(&acctPO, "number = ?", number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("account", result.Error)
	}
	return acctPO.ToDomain(), nil
}

func (r *AccountRepository) applyFilter(db *gorm.DB, f account.Filter) *gorm.DB {
	if f.UserID != "" {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.InstitutionID != "" {
		db = db.Where("institution_id = ?", f.InstitutionID)
	}
	if f.AccountTypeID != "" {
		db = db.Where("account_type_id = ?", f.AccountTypeID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", string(f.Status))
	}
	return db
}

func (r *AccountRepository) List(ctx context.Context, f account.Filter, page shared.Page) ([]*account.Account, int64, error) {
	db := r.applyFilter(r.getDB(ctx).Model(&po.AccountPO{}), f)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, TranslateError("account", err)
	}

	var acctPOs []po.AccountPO
	err := db.Order("created_at DESC, id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&acctPOs).Error
	if err != nil {
		return nil, 0, TranslateError("account", err)
	}

	accounts := make([]*account.Account, len(acctPOs))
	for i := range acctPOs {
		accounts[i] = acctPOs[i].ToDomain()
	}
	return accounts, total, nil
}

func (r *AccountRepository) Insert(ctx context.Context, a *account.Account) error {
	if err := r.getDB(ctx).Create(po.FromAccountDomain(a)).Error; err != nil {
		return TranslateError("account", err)
	}
	return nil
}

// Update writes the mutable columns only. Owner, institution, type and
// number are fixed at open time and never rewritten, so a partial update
// cannot clobber them.
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	result := r.getDB(ctx).Model(&po.AccountPO{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]interface{}{
			"alias":      a.Alias,
			"balance":    a.Balance.Amount,
			"currency":   a.Balance.Currency,
			"status":     string(a.Status),
			"version":    a.Version + 1,
			"updated_at": a.UpdatedAt,
		})
	if result.Error != nil {
		return TranslateError("account", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.AccountPO{}).Where("id = ?", a.ID).Count(&count).Error; err != nil {
			return TranslateError("account", err)
		}
		if count == 0 {
			return shared.NewNotFoundError("account")
		}
		return shared.NewConflictError("account", "account was modified concurrently")
	}
	a.Version++
	return nil
}

func (r *AccountRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.getDB(ctx).Delete(&po.AccountPO{}, "id = ?", id).Error; err != nil {
		return TranslateError("account", err)
	}
	return nil
}

func (r *AccountRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.AccountPO{}).
		Where("id = ? AND status = ?", id, string(account.StatusActive)).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("account", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.AccountPO{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, TranslateError("account", err)
	}
	return count, nil
}

func (r *AccountRepository) CountByInstitution(ctx context.Context, institutionID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.AccountPO{}).
		Where("institution_id = ?", institutionID).
		Count(&count).Error
	if err != nil {
		return 0, TranslateError("account", err)
	}
	return count, nil
}

func (r *AccountRepository) CountByAccountType(ctx context.Context, accountTypeID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.AccountPO{}).
		Where("account_type_id = ?", accountTypeID).
		Count(&count).Error
	if err != nil {
		return 0, TranslateError("account", err)
	}
	return count, nil
}

var _ account.Repository = (*AccountRepository)(nil)
