package institution

import (
	"time"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
)

type CreateInstitutionRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"required,len=2"`
}

type UpdateInstitutionRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ListInstitutionsRequest struct {
	Code     string `form:"code"`
	Country  string `form:"country"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type InstitutionResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InstitutionListResponse struct {
	Institutions []InstitutionResponse `json:"institutions"`
	Total        int64                 `json:"total"`
}

func toResponse(fi *institution.FinancialInstitution) *InstitutionResponse {
	return &InstitutionResponse{
		ID:        fi.ID,
		Code:      fi.Code,
		Name:      fi.Name,
		Country:   fi.Country,
		Status:    string(fi.Status),
		CreatedAt: fi.CreatedAt,
		UpdatedAt: fi.UpdatedAt,
	}
}
