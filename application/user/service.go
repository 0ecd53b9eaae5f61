// Package user orchestrates user lifecycle operations: transaction scopes
// around mutations, plain repository reads for queries, one audit event per
// state change.
package user

import (
	"context"

	appaudit "github.com/daniel-torresc/emerald-backend-sub002/application/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	domainaudit "github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
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

func (s *ApplicationService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u, err := user.New(req.Email, req.FullName)
	if err != nil {
		return nil, err
	}

	err = s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		existing, err := repos.Users().FindByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewConflictError("user", "email already registered")
		}
		return repos.Users().Insert(ctx, u)
	})
	appaudit.Report(ctx, s.recorder, "user.create", "user", u.ID, nil, u, err)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*UserResponse, error) {
	u, err := s.reads.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, shared.NewNotFoundError("user")
	}
	return toResponse(u), nil
}

func (s *ApplicationService) List(ctx context.Context, req ListUsersRequest) (*UserListResponse, error) {
	page := shared.Page{Number: req.Page, Size: req.PageSize}.Normalize()
	filter := user.Filter{Email: req.Email, Active: req.Active}

	users, total, err := s.reads.Users().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = *toResponse(u)
	}
	return &UserListResponse{Users: out, Total: total}, nil
}

// UpdateProfile changes a user's own profile. A different authenticated
// actor is rejected, regardless of whether the target exists.
func (s *ApplicationService) UpdateProfile(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	if actor := shared.ActorFromContext(ctx); actor != "" && actor != id {
		return nil, shared.NewAuthorizationError("user", "profile can only be changed by its owner")
	}

	var updated *user.User
	var before *user.User
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		u, err := repos.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return shared.NewNotFoundError("user")
		}
		snapshot := *u
		before = &snapshot

		if err := u.UpdateProfile(req.FullName); err != nil {
			return err
		}
		if err := repos.Users().Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	appaudit.Report(ctx, s.recorder, "user.update", "user", id, before, updated, err)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Delete soft-deletes the user. Users still owning accounts cannot be
// deleted (RESTRICT); the accounts must go first.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		u, err := repos.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			// Idempotent: deleting an absent or already-deleted user
			// succeeds without effect.
			return nil
		}

		count, err := repos.Accounts().CountByUser(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewConflictError("user", "user still owns accounts")
		}
		return repos.Users().SoftDelete(ctx, id)
	})
	appaudit.Report(ctx, s.recorder, "user.delete", "user", id, nil, nil, err)
	return err
}
