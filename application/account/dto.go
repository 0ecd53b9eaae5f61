package account

import (
	"time"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
)

type OpenAccountRequest struct {
	UserID        string `json:"user_id" binding:"required"`
	InstitutionID string `json:"institution_id" binding:"required"`
	AccountTypeID string `json:"account_type_id" binding:"required"`
	Number        string `json:"number" binding:"required"`
	Alias         string `json:"alias"`
	Currency      string `json:"currency" binding:"required,len=3"`
}

type UpdateAliasRequest struct {
	Alias string `json:"alias" binding:"required"`
}

// AmountRequest carries a monetary amount as a decimal string so precision
// survives JSON.
type AmountRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
}

type ListAccountsRequest struct {
	UserID        string `form:"user_id"`
	InstitutionID string `form:"institution_id"`
	AccountTypeID string `form:"account_type_id"`
	Status        string `form:"status" binding:"omitempty,oneof=active frozen closed"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type AccountResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	InstitutionID string        `json:"institution_id"`
	AccountTypeID string        `json:"account_type_id"`
	Number        string        `json:"number"`
	Alias         string        `json:"alias"`
	Balance       MoneyResponse `json:"balance"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
}

func toResponse(a *account.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		InstitutionID: a.InstitutionID,
		AccountTypeID: a.AccountTypeID,
		Number:        a.Number,
		Alias:         a.Alias,
		Balance: MoneyResponse{
			Amount:   a.Balance.Amount.String(),
			Currency: a.Balance.Currency,
		},
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
