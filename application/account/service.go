// Package account orchestrates the account lifecycle: opening with
// in-scope revalidation of the referenced aggregates, balance movements,
// status transitions and guarded deletion.
package account

import (
	"context"

	appaudit "github.com/daniel-torresc/emerald-backend-sub002/application/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
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

// Open creates a new account. The owner, institution and account type are
// re-validated inside the transaction scope so a concurrent delete or
// deactivation of any of them aborts the open.
func (s *ApplicationService) Open(ctx context.Context, req OpenAccountRequest) (*AccountResponse, error) {
	a, err := account.New(req.UserID, req.InstitutionID, req.AccountTypeID, req.Number, req.Alias, req.Currency)
	if err != nil {
		return nil, err
	}

	err = s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		ok, err := repos.Users().ExistsActive(ctx, a.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewValidationError("account", "user_id", "owner does not exist or is not active")
		}

		ok, err = repos.Institutions().ExistsActive(ctx, a.InstitutionID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewValidationError("account", "institution_id", "institution does not exist or is not active")
		}

		ok, err = repos.AccountTypes().ExistsActive(ctx, a.AccountTypeID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewValidationError("account", "account_type_id", "account type does not exist or is not active")
		}

		existing, err := repos.Accounts().FindByNumber(ctx, a.Number)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewConflictError("account", "account number already exists")
		}
		return repos.Accounts().Insert(ctx, a)
	})
	appaudit.Report(ctx, s.recorder, "account.open", "account", a.ID, nil, a, err)
	if err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Get returns the account. A non-owner actor gets NotFound rather than
// Forbidden so account ids do not leak.
func (s *ApplicationService) Get(ctx context.Context, id string) (*AccountResponse, error) {
	a, err := s.reads.Accounts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || !ownedByActor(ctx, a.UserID) {
		return nil, shared.NewNotFoundError("account")
	}
	return toResponse(a), nil
}

func (s *ApplicationService) List(ctx context.Context, req ListAccountsRequest) (*AccountListResponse, error) {
	page := shared.Page{Number: req.Page, Size: req.PageSize}.Normalize()
	filter := account.Filter{
		UserID:        req.UserID,
		InstitutionID: req.InstitutionID,
		AccountTypeID: req.AccountTypeID,
		Status:        account.Status(req.Status),
	}
	// Non-empty actor restricts the listing to the actor's own accounts.
	if actor := shared.ActorFromContext(ctx); actor != "" {
		filter.UserID = actor
	}

	accounts, total, err := s.reads.Accounts().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = *toResponse(a)
	}
	return &AccountListResponse{Accounts: out, Total: total}, nil
}

func (s *ApplicationService) UpdateAlias(ctx context.Context, id string, req UpdateAliasRequest) (*AccountResponse, error) {
	return s.mutate(ctx, id, "account.update_alias", func(a *account.Account) error {
		a.UpdateAlias(req.Alias)
		return nil
	})
}

// Deposit credits the account balance.
func (s *ApplicationService) Deposit(ctx context.Context, id string, req AmountRequest) (*AccountResponse, error) {
	m, err := parseAmount(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "account.deposit", func(a *account.Account) error {
		return a.Credit(m)
	})
}

// Withdraw debits the account balance; overdraft is rejected.
func (s *ApplicationService) Withdraw(ctx context.Context, id string, req AmountRequest) (*AccountResponse, error) {
	m, err := parseAmount(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "account.withdraw", func(a *account.Account) error {
		return a.Debit(m)
	})
}

func (s *ApplicationService) Freeze(ctx context.Context, id string) (*AccountResponse, error) {
	return s.mutate(ctx, id, "account.freeze", func(a *account.Account) error {
		return a.Freeze()
	})
}

func (s *ApplicationService) Unfreeze(ctx context.Context, id string) (*AccountResponse, error) {
	return s.mutate(ctx, id, "account.unfreeze", func(a *account.Account) error {
		return a.Unfreeze()
	})
}

// Close requires a zero balance.
func (s *ApplicationService) Close(ctx context.Context, id string) (*AccountResponse, error) {
	return s.mutate(ctx, id, "account.close", func(a *account.Account) error {
		return a.Close()
	})
}

// Delete soft-deletes the account. Cards hold a required reference to their
// account, so remaining cards block the delete (RESTRICT).
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		a, err := repos.Accounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil || !ownedByActor(ctx, a.UserID) {
			// Idempotent for the owner, invisible to everyone else.
			return nil
		}

		count, err := repos.Cards().CountByAccount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewConflictError("account", "cards still reference this account")
		}
		return repos.Accounts().SoftDelete(ctx, id)
	})
	appaudit.Report(ctx, s.recorder, "account.delete", "account", id, nil, nil, err)
	return err
}

// mutate is the shared scope for single-account state changes: load, check
// ownership, apply, persist with the version guard, audit once.
func (s *ApplicationService) mutate(ctx context.Context, id, action string, apply func(*account.Account) error) (*AccountResponse, error) {
	var updated *account.Account
	var before *account.Account
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		a, err := repos.Accounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil || !ownedByActor(ctx, a.UserID) {
			return shared.NewNotFoundError("account")
		}
		snapshot := *a
		before = &snapshot

		if err := apply(a); err != nil {
			return err
		}
		if err := repos.Accounts().Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	appaudit.Report(ctx, s.recorder, action, "account", id, before, updated, err)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

func parseAmount(req AmountRequest) (shared.Money, error) {
	m, err := shared.ParseMoney(req.Amount, req.Currency)
	if err != nil {
		return shared.Money{}, err
	}
	if m.Amount.IsNegative() || m.Amount.IsZero() {
		return shared.Money{}, shared.NewValidationError("account", "amount", "amount must be positive")
	}
	return m, nil
}

func ownedByActor(ctx context.Context, userID string) bool {
	actor := shared.ActorFromContext(ctx)
	return actor == "" || actor == userID
}
