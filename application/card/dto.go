package card

import (
	"time"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
)

type IssueCardRequest struct {
	AccountID     string `json:"account_id" binding:"required"`
	InstitutionID string `json:"institution_id"`
	LastFour      string `json:"last_four_digits" binding:"required,len=4"`
	Network       string `json:"network" binding:"required,oneof=visa mastercard amex other"`
	ExpMonth      int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear       int    `json:"exp_year" binding:"required"`
}

type UpdateCardStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

type ListCardsRequest struct {
	AccountID     string `form:"account_id"`
	InstitutionID string `form:"institution_id"`
	Network       string `form:"network" binding:"omitempty,oneof=visa mastercard amex other"`
	Status        string `form:"status" binding:"omitempty,oneof=active blocked"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

type CardResponse struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	InstitutionID *string   `json:"institution_id"`
	LastFour      string    `json:"last_four_digits"`
	Network       string    `json:"network"`
	ExpMonth      int       `json:"exp_month"`
	ExpYear       int       `json:"exp_year"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int64          `json:"total"`
}

func toResponse(c *card.Card) *CardResponse {
	return &CardResponse{
		ID:            c.ID,
		AccountID:     c.AccountID,
		InstitutionID: c.InstitutionID,
		LastFour:      c.LastFour,
		Network:       string(c.Network),
		ExpMonth:      c.ExpMonth,
		ExpYear:       c.ExpYear,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
