package po

import (
	"time"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
)

type CardPO struct {
	ID        string `gorm:"primaryKey;size:36"`
	AccountID string `gorm:"size:36;not null;index;uniqueIndex:ux_cards_account_last_four"`
	// InstitutionID is nullable: a null column maps to an absent reference
	// on the entity, never to a sentinel value.
	InstitutionID *string `gorm:"size:36;index"`
	LastFour      string  `gorm:"size:4;not null;uniqueIndex:ux_cards_account_last_four"`
	Network       string  `gorm:"size:16;not null"`
	ExpMonth      int     `gorm:"not null"`
	ExpYear       int     `gorm:"not null"`
	Status        string  `gorm:"size:16;not null"`
	Version       int     `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (CardPO) TableName() string {
	return "cards"
}

func FromCardDomain(c *card.Card) *CardPO {
	return &CardPO{
		ID:            c.ID,
		AccountID:     c.AccountID,
		InstitutionID: c.InstitutionID,
		LastFour:      c.LastFour,
		Network:       string(c.Network),
		ExpMonth:      c.ExpMonth,
		ExpYear:       c.ExpYear,
		Status:        string(c.Status),
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (po *CardPO) ToDomain() *card.Card {
	return &card.Card{
		ID:            po.ID,
		AccountID:     po.AccountID,
		InstitutionID: po.InstitutionID,
		LastFour:      po.LastFour,
		Network:       card.Network(po.Network),
		ExpMonth:      po.ExpMonth,
		ExpYear:       po.ExpYear,
		Status:        card.Status(po.Status),
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}
