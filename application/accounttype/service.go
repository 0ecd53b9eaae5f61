// Package accounttype manages the account-classification reference data.
package accounttype

import (
	"context"

	appaudit "github.com/daniel-torresc/emerald-backend-sub002/application/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	domainaudit "github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
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

func (s *ApplicationService) Create(ctx context.Context, req CreateAccountTypeRequest) (*AccountTypeResponse, error) {
	t, err := accounttype.New(req.Code, req.Description)
	if err != nil {
		return nil, err
	}

	err = s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		existing, err := repos.AccountTypes().FindByCode(ctx, t.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewConflictError("account_type", "account type code already exists")
		}
		return repos.AccountTypes().Insert(ctx, t)
	})
	appaudit.Report(ctx, s.recorder, "account_type.create", "account_type", t.ID, nil, t, err)
	if err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*AccountTypeResponse, error) {
	t, err := s.reads.AccountTypes().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, shared.NewNotFoundError("account_type")
	}
	return toResponse(t), nil
}

func (s *ApplicationService) List(ctx context.Context, req ListAccountTypesRequest) (*AccountTypeListResponse, error) {
	page := shared.Page{Number: req.Page, Size: req.PageSize}.Normalize()
	filter := accounttype.Filter{Code: req.Code, Active: req.Active}

	types, total, err := s.reads.AccountTypes().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := make([]AccountTypeResponse, len(types))
	for i, t := range types {
		out[i] = *toResponse(t)
	}
	return &AccountTypeListResponse{AccountTypes: out, Total: total}, nil
}

func (s *ApplicationService) Update(ctx context.Context, id string, req UpdateAccountTypeRequest) (*AccountTypeResponse, error) {
	var updated *accounttype.AccountType
	var before *accounttype.AccountType
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		t, err := repos.AccountTypes().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return shared.NewNotFoundError("account_type")
		}
		snapshot := *t
		before = &snapshot

		if err := t.UpdateDescription(req.Description); err != nil {
			return err
		}
		if req.Active != nil {
			if *req.Active {
				t.Activate()
			} else {
				t.Deactivate()
			}
		}

		if err := repos.AccountTypes().Update(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	appaudit.Report(ctx, s.recorder, "account_type.update", "account_type", id, before, updated, err)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Delete soft-deletes the account type unless accounts still reference it
// (RESTRICT).
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		t, err := repos.AccountTypes().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}

		count, err := repos.Accounts().CountByAccountType(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewConflictError("account_type", "accounts still reference this account type")
		}
		return repos.AccountTypes().SoftDelete(ctx, id)
	})
	appaudit.Report(ctx, s.recorder, "account_type.delete", "account_type", id, nil, nil, err)
	return err
}
