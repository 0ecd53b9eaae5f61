package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("user", result.Error)
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("user", result.Error)
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) applyFilter(db *gorm.DB, f user.Filter) *gorm.DB {
	if f.Email != "" {
		db = db.Where("email = ?", f.Email)
	}
	if f.Active != nil {
		db = db.Where("active = ?", *f.Active)
	}
	return db
}

func (r *UserRepository) List(ctx context.Context, f user.Filter, page shared.Page) ([]*user.User, int64, error) {
	db := r.applyFilter(r.getDB(ctx).Model(&po.UserPO{}), f)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, TranslateError("user", err)
	}

	var userPOs []po.UserPO
	err := db.Order("created_at DESC, id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&userPOs).Error
	if err != nil {
		return nil, 0, TranslateError("user", err)
	}

	users := make([]*user.User, len(userPOs))
	for i := range userPOs {
		users[i] = userPOs[i].ToDomain()
	}
	return users, total, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	if err := r.getDB(ctx).Create(po.FromUserDomain(u)).Error; err != nil {
		return TranslateError("user", err)
	}
	return nil
}

// Update writes only the mutable columns, guarded by the optimistic
// version. Email is the natural key and is never rewritten here.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result := r.getDB(ctx).Model(&po.UserPO{}).
		Where("id = ? AND version = ?", u.ID, u.Version).
		Updates(map[string]interface{}{
			"full_name":  u.FullName,
			"active":     u.Active,
			"version":    u.Version + 1,
			"updated_at": u.UpdatedAt,
		})
	if result.Error != nil {
		return TranslateError("user", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.staleOrMissing(ctx, u.ID, "user", &po.UserPO{})
	}
	u.Version++
	return nil
}

func (r *UserRepository) staleOrMissing(ctx context.Context, id, entity string, model interface{}) error {
	var count int64
	if err := r.getDB(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return TranslateError(entity, err)
	}
	if count == 0 {
		return shared.NewNotFoundError(entity)
	}
	return shared.NewConflictError(entity, entity+" was modified concurrently")
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	// Deleting an already-deleted id affects zero rows; that is a no-op,
	// not an error.
	if err := r.getDB(ctx).Delete(&po.UserPO{}, "id = ?", id).Error; err != nil {
		return TranslateError("user", err)
	}
	return nil
}

func (r *UserRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.UserPO{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("user", err)
	}
	return count > 0, nil
}

var _ user.Repository = (*UserRepository)(nil)
