package po

import (
	"time"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
)

type AccountTypePO struct {
	ID          string `gorm:"primaryKey;size:36"`
	Code        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:500;not null"`
	Active      bool   `gorm:"not null;default:true"`
	Version     int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (AccountTypePO) TableName() string {
	return "account_types"
}

func FromAccountTypeDomain(t *accounttype.AccountType) *AccountTypePO {
	return &AccountTypePO{
		ID:          t.ID,
		Code:        t.Code,
		Description: t.Description,
		Active:      t.Active,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (po *AccountTypePO) ToDomain() *accounttype.AccountType {
	return &accounttype.AccountType{
		ID:          po.ID,
		Code:        po.Code,
		Description: po.Description,
		Active:      po.Active,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}
