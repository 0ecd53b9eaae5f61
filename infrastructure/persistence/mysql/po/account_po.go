package po

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type AccountPO struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        string          `gorm:"size:36;not null;index"`
	InstitutionID string          `gorm:"size:36;not null;index"`
	AccountTypeID string          `gorm:"size:36;not null;index"`
	Number        string          `gorm:"size:64;uniqueIndex;not null"`
	Alias         string          `gorm:"size:100"`
	Balance       decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Currency      string          `gorm:"size:3;not null"`
	Status        string          `gorm:"size:16;not null"`
	Version       int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (AccountPO) TableName() string {
	return "accounts"
}

func FromAccountDomain(a *account.Account) *AccountPO {
	return &AccountPO{
		ID:            a.ID,
		UserID:        a.UserID,
		InstitutionID: a.InstitutionID,
		AccountTypeID: a.AccountTypeID,
		Number:        a.Number,
		Alias:         a.Alias,
		Balance:       a.Balance.Amount,
		Currency:      a.Balance.Currency,
		Status:        string(a.Status),
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (po *AccountPO) ToDomain() *account.Account {
	return &account.Account{
		ID:            po.ID,
		UserID:        po.UserID,
		InstitutionID: po.InstitutionID,
		AccountTypeID: po.AccountTypeID,
		Number:        po.Number,
		Alias:         po.Alias,
		Balance:       shared.NewMoney(po.Balance, po.Currency),
		Status:        account.Status(po.Status),
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}
