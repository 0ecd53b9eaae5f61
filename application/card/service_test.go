package card

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/mock"
)

type fixture struct {
	service  *ApplicationService
	set      *mock.RepositorySet
	recorder *mock.Recorder

	account *account.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	set := mock.NewRepositorySet()
	recorder := mock.NewRecorder()

	a, err := account.New("user-1", "inst-1", "type-1", "ACC-1", "", "EUR")
	require.NoError(t, err)
	set.Accounts.Seed(a)

	return &fixture{
		service:  NewApplicationService(mock.NewUnitOfWorkFactory(set), set.View(), recorder),
		set:      set,
		recorder: recorder,
		account:  a,
	}
}

func (f *fixture) issueRequest(lastFour string) IssueCardRequest {
	return IssueCardRequest{
		AccountID: f.account.ID,
		LastFour:  lastFour,
		Network:   "visa",
		ExpMonth:  12,
		ExpYear:   2030,
	}
}

func (f *fixture) seedCard(t *testing.T, lastFour string) *card.Card {
	t.Helper()
	c, err := card.New(f.account.ID, nil, lastFour, card.NetworkVisa, 12, 2030)
	require.NoError(t, err)
	f.set.Cards.Seed(c)
	return c
}

func TestIssueCard(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Issue(context.Background(), f.issueRequest("4242"))
	require.NoError(t, err)
	assert.Equal(t, "4242", resp.LastFour)
	assert.Equal(t, "active", resp.Status)
	assert.Nil(t, resp.InstitutionID)

	require.Equal(t, 1, f.recorder.Len())
	assert.Equal(t, "card.issue", f.recorder.Last().Action)
}

func TestIssueCardWithInstitution(t *testing.T) {
	f := newFixture(t)

	fi, err := institution.New("BANK-1", "Some Bank", "ES")
	require.NoError(t, err)
	f.set.Institutions.Seed(fi)

	req := f.issueRequest("1111")
	req.InstitutionID = fi.ID
	resp, err := f.service.Issue(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.InstitutionID)
	assert.Equal(t, fi.ID, *resp.InstitutionID)
}

func TestIssueCardRejectsUnknownInstitution(t *testing.T) {
	f := newFixture(t)

	req := f.issueRequest("2222")
	req.InstitutionID = "ghost"
	_, err := f.service.Issue(context.Background(), req)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, audit.OutcomeFailure, f.recorder.Last().Outcome)
}

func TestIssueCardOnMissingAccount(t *testing.T) {
	f := newFixture(t)

	req := f.issueRequest("3333")
	req.AccountID = "ghost"
	_, err := f.service.Issue(context.Background(), req)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestIssueCardOnInactiveAccount(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.account.Freeze())
	f.set.Accounts.Seed(f.account)

	_, err := f.service.Issue(context.Background(), f.issueRequest("4444"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestIssueCardOnSomeoneElsesAccount(t *testing.T) {
	f := newFixture(t)

	stranger := shared.ContextWithActor(context.Background(), "someone-else")
	_, err := f.service.Issue(stranger, f.issueRequest("5555"))
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestIssueCardDuplicateLastFour(t *testing.T) {
	f := newFixture(t)
	f.seedCard(t, "4242")

	_, err := f.service.Issue(context.Background(), f.issueRequest("4242"))
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestGetCardHiddenFromNonOwner(t *testing.T) {
	f := newFixture(t)
	c := f.seedCard(t, "4242")

	owner := shared.ContextWithActor(context.Background(), f.account.UserID)
	resp, err := f.service.Get(owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, resp.ID)

	stranger := shared.ContextWithActor(context.Background(), "someone-else")
	_, err = f.service.Get(stranger, c.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestUpdateCardStatus(t *testing.T) {
	f := newFixture(t)
	c := f.seedCard(t, "4242")
	ctx := context.Background()

	resp, err := f.service.UpdateStatus(ctx, c.ID, UpdateCardStatusRequest{Status: "blocked"})
	require.NoError(t, err)
	assert.Equal(t, "blocked", resp.Status)

	resp, err = f.service.UpdateStatus(ctx, c.ID, UpdateCardStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)

	assert.Equal(t, 2, f.recorder.Len())
	assert.Equal(t, "card.update_status", f.recorder.Last().Action)
}

func TestListCardsByAccount(t *testing.T) {
	f := newFixture(t)
	f.seedCard(t, "1111")
	f.seedCard(t, "2222")

	other, err := card.New("other-account", nil, "3333", card.NetworkVisa, 12, 2030)
	require.NoError(t, err)
	f.set.Cards.Seed(other)

	resp, err := f.service.List(context.Background(), ListCardsRequest{AccountID: f.account.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Cards, 2)
}

func TestDeleteCard(t *testing.T) {
	f := newFixture(t)
	c := f.seedCard(t, "4242")

	require.NoError(t, f.service.Delete(context.Background(), c.ID))

	found, _ := f.set.Cards.FindByID(context.Background(), c.ID)
	assert.Nil(t, found)
}

func TestDeleteCardByNonOwnerIsSilent(t *testing.T) {
	f := newFixture(t)
	c := f.seedCard(t, "4242")

	stranger := shared.ContextWithActor(context.Background(), "someone-else")
	require.NoError(t, f.service.Delete(stranger, c.ID))

	found, _ := f.set.Cards.FindByID(context.Background(), c.ID)
	assert.NotNil(t, found)
}
