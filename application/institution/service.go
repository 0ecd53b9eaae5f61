// Package institution manages the financial-institution reference data.
package institution

import (
	"context"

	appaudit "github.com/daniel-torresc/emerald-backend-sub002/application/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	domainaudit "github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type ApplicationService struct {
	factory  domain.UnitOfWorkFactory
	reads    domain.Repositories
	recorder domainaudit.Recorder
}

func NewApplicationService(factory domain.UnitOfWorkFactory, reads domain.Repositories, recorder domainaudit.Recorder) *ApplicationService {
	return &ApplicationService{
		factory:  factory,
		reads:    reads,
		recorder: recorder,
	}
}

func (s *ApplicationService) Create(ctx context.Context, req CreateInstitutionRequest) (*InstitutionResponse, error) {
	fi, err := institution.New(req.Code, req.Name, req.Country)
	if err != nil {
		return nil, err
	}

	err = s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		existing, err := repos.Institutions().FindByCode(ctx, fi.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewConflictError("institution", "institution code already exists")
		}
		return repos.Institutions().Insert(ctx, fi)
	})
	appaudit.Report(ctx, s.recorder, "institution.create", "institution", fi.ID, nil, fi, err)
	if err != nil {
		return nil, err
	}
	return toResponse(fi), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*InstitutionResponse, error) {
	fi, err := s.reads.Institutions().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, shared.NewNotFoundError("institution")
	}
	return toResponse(fi), nil
}

func (s *ApplicationService) GetByCode(ctx context.Context, code string) (*InstitutionResponse, error) {
	fi, err := s.reads.Institutions().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, shared.NewNotFoundError("institution")
	}
	return toResponse(fi), nil
}

func (s *ApplicationService) List(ctx context.Context, req ListInstitutionsRequest) (*InstitutionListResponse, error) {
	page := shared.Page{Number: req.Page, Size: req.PageSize}.Normalize()
	filter := institution.Filter{
		Code:    req.Code,
		Country: req.Country,
		Status:  institution.Status(req.Status),
	}

	institutions, total, err := s.reads.Institutions().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := make([]InstitutionResponse, len(institutions))
	for i, fi := range institutions {
		out[i] = *toResponse(fi)
	}
	return &InstitutionListResponse{Institutions: out, Total: total}, nil
}

func (s *ApplicationService) Update(ctx context.Context, id string, req UpdateInstitutionRequest) (*InstitutionResponse, error) {
	var updated *institution.FinancialInstitution
	var before *institution.FinancialInstitution
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		fi, err := repos.Institutions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if fi == nil {
			return shared.NewNotFoundError("institution")
		}
		snapshot := *fi
		before = &snapshot

		if err := fi.Rename(req.Name); err != nil {
			return err
		}
		switch institution.Status(req.Status) {
		case institution.StatusActive:
			fi.Activate()
		case institution.StatusInactive:
			fi.Deactivate()
		case "":
			// Status unchanged.
		}

		if err := repos.Institutions().Update(ctx, fi); err != nil {
			return err
		}
		updated = fi
		return nil
	})
	appaudit.Report(ctx, s.recorder, "institution.update", "institution", id, before, updated, err)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Delete soft-deletes the institution. Accounts hold a required reference,
// so any remaining account blocks the delete (RESTRICT). Cards reference
// institutions optionally; those references are cleared in the same scope
// so the delete and the clearing commit or roll back together.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		fi, err := repos.Institutions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if fi == nil {
			return nil
		}

		count, err := repos.Accounts().CountByInstitution(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewConflictError("institution", "accounts still reference this institution")
		}

		if err := repos.Cards().ClearInstitution(ctx, id); err != nil {
			return err
		}
		return repos.Institutions().SoftDelete(ctx, id)
	})
	appaudit.Report(ctx, s.recorder, "institution.delete", "institution", id, nil, nil, err)
	return err
}
