package po

import (
	"time"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
)

type InstitutionPO struct {
	ID        string `gorm:"primaryKey;size:36"`
	Code      string `gorm:"size:32;uniqueIndex;not null"`
	Name      string `gorm:"size:200;not null"`
	Country   string `gorm:"size:2;not null"`
	Status    string `gorm:"size:16;not null"`
	Version   int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (InstitutionPO) TableName() string {
	return "financial_institutions"
}

func FromInstitutionDomain(fi *institution.FinancialInstitution) *InstitutionPO {
	return &InstitutionPO{
		ID:        fi.ID,
		Code:      fi.Code,
		Name:      fi.Name,
		Country:   fi.Country,
		Status:    string(fi.Status),
		Version:   fi.Version,
		CreatedAt: fi.CreatedAt,
		UpdatedAt: fi.UpdatedAt,
	}
}

func (po *InstitutionPO) ToDomain() *institution.FinancialInstitution {
	return &institution.FinancialInstitution{
		ID:        po.ID,
		Code:      po.Code,
		Name:      po.Name,
		Country:   po.Country,
		Status:    institution.Status(po.Status),
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
