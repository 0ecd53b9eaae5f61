package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

type InstitutionRepository struct {
	db *gorm.DB
}

func NewInstitutionRepository(db *gorm.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

func (r *InstitutionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *InstitutionRepository) FindByID(ctx context.Context, id string) (*institution.FinancialInstitution, error) {
	var instPO po.InstitutionPO
	result := r.getDB(ctx).First(&instPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("institution", result.Error)
	}
	return instPO.ToDomain(), nil
}

func (r *InstitutionRepository) FindByCode(ctx context.Context, code string) (*institution.FinancialInstitution, error) {
	var instPO po.InstitutionPO
	result := r.getDB(ctx).First(&instPO, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("institution", result.Error)
	}
	return instPO.ToDomain(), nil
}

func (r *InstitutionRepository) applyFilter(db *gorm.DB, f institution.Filter) *gorm.DB {
	if f.Code != "" {
		db = db.Where("code = ?", f.Code)
	}
	if f.Country != "" {
		db = db.Where("country = ?", f.Country)
	}
	if f.Status != "" {
		db = db.Where("status = ?", string(f.Status))
	}
	return db
}

func (r *InstitutionRepository) List(ctx context.Context, f institution.Filter, page shared.Page) ([]*institution.FinancialInstitution, int64, error) {
	db := r.applyFilter(r.getDB(ctx).Model(&po.InstitutionPO{}), f)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, TranslateError("institution", err)
	}

	var instPOs []po.InstitutionPO
	err := db.Order("name ASC, id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&instPOs).Error
	if err != nil {
		return nil, 0, TranslateError("institution", err)
	}

	institutions := make([]*institution.FinancialInstitution, len(instPOs))
	for i := range instPOs {
		institutions[i] = instPOs[i].ToDomain()
	}
	return institutions, total, nil
}

func (r *InstitutionRepository) Insert(ctx context.Context, fi *institution.FinancialInstitution) error {
	if err := r.getDB(ctx).Create(po.FromInstitutionDomain(fi)).Error; err != nil {
		return TranslateError("institution", err)
	}
	return nil
}

func (r *InstitutionRepository) Update(ctx context.Context, fi *institution.FinancialInstitution) error {
	result := r.getDB(ctx).Model(&po.InstitutionPO{}).
		Where("id = ? AND version = ?", fi.ID, fi.Version).
		Updates(map[string]interface{}{
			"name":       fi.Name,
			"country":    fi.Country,
			"status":     string(fi.Status),
			"version":    fi.Version + 1,
			"updated_at": fi.UpdatedAt,
		})
	if result.Error != nil {
		return TranslateError("institution", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.InstitutionPO{}).Where("id = ?", fi.ID).Count(&count).Error; err != nil {
			return TranslateError("institution", err)
		}
		if count == 0 {
			return shared.NewNotFoundError("institution")
		}
		return shared.NewConflictError("institution", "institution was modified concurrently")
	}
	fi.Version++
	return nil
}

func (r *InstitutionRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.getDB(ctx).Delete(&po.InstitutionPO{}, "id = ?", id).Error; err != nil {
		return TranslateError("institution", err)
	}
	return nil
}

func (r *InstitutionRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.InstitutionPO{}).
		Where("id = ? AND status = ?", id, string(institution.StatusActive)).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("institution", err)
	}
	return count > 0, nil
}

var _ institution.Repository = (*InstitutionRepository)(nil)
