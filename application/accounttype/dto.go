package accounttype

import (
	"time"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
)

type CreateAccountTypeRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateAccountTypeRequest struct {
	Description string `json:"description" binding:"required"`
	Active      *bool  `json:"active"`
}

type ListAccountTypesRequest struct {
	Code     string `form:"code"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type AccountTypeResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AccountTypeListResponse struct {
	AccountTypes []AccountTypeResponse `json:"account_types"`
	Total        int64                 `json:"total"`
}

func toResponse(t *accounttype.AccountType) *AccountTypeResponse {
	return &AccountTypeResponse{
		ID:          t.ID,
		Code:        t.Code,
		Description: t.Description,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
