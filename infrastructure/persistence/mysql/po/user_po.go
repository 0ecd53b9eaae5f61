// Package po holds the persistence objects: the storage-record shapes the
// adapters map domain entities to and from. Mapping is pure and
// bidirectional; FromDomain and ToDomain are inverses for every field.
package po

import (
	"time"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
)

type UserPO struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FullName  string `gorm:"size:200;not null"`
	Active    bool   `gorm:"not null;default:true"`
	Version   int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Active:    u.Active,
		Version:   u.Version,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (po *UserPO) ToDomain() *user.User {
	return &user.User{
		ID:        po.ID,
		Email:     po.Email,
		FullName:  po.FullName,
		Active:    po.Active,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
