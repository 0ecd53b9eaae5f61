// Package card orchestrates card issuance and lifecycle. Ownership is
// derived through the owning account; a card of someone else's account is
// reported as absent, never as forbidden.
package card

import (
	"context"

	appaudit "github.com/daniel-torresc/emerald-backend-sub002/application/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	domainaudit "github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
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

// Issue registers a card on an account. The account must exist, be active
// and belong to the actor; the optional issuing institution, when given, is
// re-validated active inside the scope. Last four digits are unique per
// account.
func (s *ApplicationService) Issue(ctx context.Context, req IssueCardRequest) (*CardResponse, error) {
	var institutionID *string
	if req.InstitutionID != "" {
		institutionID = &req.InstitutionID
	}
	c, err := card.New(req.AccountID, institutionID, req.LastFour, card.Network(req.Network), req.ExpMonth, req.ExpYear)
	if err != nil {
		return nil, err
	}

	err = s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		a, err := repos.Accounts().FindByID(ctx, c.AccountID)
		if err != nil {
			return err
		}
		if a == nil || !ownedByActor(ctx, a.UserID) {
			return shared.NewNotFoundError("account")
		}
		if !a.IsActive() {
			return shared.NewValidationError("card", "account_id", "account is not active")
		}

		if c.InstitutionID != nil {
			ok, err := repos.Institutions().ExistsActive(ctx, *c.InstitutionID)
			if err != nil {
				return err
			}
			if !ok {
				return shared.NewValidationError("card", "institution_id", "institution does not exist or is not active")
			}
		}

		existing, err := repos.Cards().FindByAccountAndLastFour(ctx, c.AccountID, c.LastFour)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewConflictError("card", "card already registered for this account")
		}
		return repos.Cards().Insert(ctx, c)
	})
	appaudit.Report(ctx, s.recorder, "card.issue", "card", c.ID, nil, c, err)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*CardResponse, error) {
	c, err := s.reads.Cards().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.NewNotFoundError("card")
	}
	if owned, err := s.cardOwnedByActor(ctx, c); err != nil {
		return nil, err
	} else if !owned {
		return nil, shared.NewNotFoundError("card")
	}
	return toResponse(c), nil
}

func (s *ApplicationService) List(ctx context.Context, req ListCardsRequest) (*CardListResponse, error) {
	page := shared.Page{Number: req.Page, Size: req.PageSize}.Normalize()
	filter := card.Filter{
		AccountID:     req.AccountID,
		InstitutionID: req.InstitutionID,
		Network:       card.Network(req.Network),
		Status:        card.Status(req.Status),
	}

	cards, total, err := s.reads.Cards().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = *toResponse(c)
	}
	return &CardListResponse{Cards: out, Total: total}, nil
}

// UpdateStatus blocks or unblocks the card.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, req UpdateCardStatusRequest) (*CardResponse, error) {
	var updated *card.Card
	var before *card.Card
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		c, err := repos.Cards().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return shared.NewNotFoundError("card")
		}
		a, err := repos.Accounts().FindByID(ctx, c.AccountID)
		if err != nil {
			return err
		}
		if a != nil && !ownedByActor(ctx, a.UserID) {
			return shared.NewNotFoundError("card")
		}
		snapshot := *c
		before = &snapshot

		switch card.Status(req.Status) {
		case card.StatusBlocked:
			c.Block()
		case card.StatusActive:
			c.Unblock()
		}

		if err := repos.Cards().Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	appaudit.Report(ctx, s.recorder, "card.update_status", "card", id, before, updated, err)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Delete soft-deletes the card. Nothing references cards, so no RESTRICT
// check applies.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.factory.New().Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		c, err := repos.Cards().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		a, err := repos.Accounts().FindByID(ctx, c.AccountID)
		if err != nil {
			return err
		}
		if a != nil && !ownedByActor(ctx, a.UserID) {
			return nil
		}
		return repos.Cards().SoftDelete(ctx, id)
	})
	appaudit.Report(ctx, s.recorder, "card.delete", "card", id, nil, nil, err)
	return err
}

func (s *ApplicationService) cardOwnedByActor(ctx context.Context, c *card.Card) (bool, error) {
	actor := shared.ActorFromContext(ctx)
	if actor == "" {
		return true, nil
	}
	a, err := s.reads.Accounts().FindByID(ctx, c.AccountID)
	if err != nil {
		return false, err
	}
	return a != nil && a.UserID == actor, nil
}

func ownedByActor(ctx context.Context, userID string) bool {
	actor := shared.ActorFromContext(ctx)
	return actor == "" || actor == userID
}
