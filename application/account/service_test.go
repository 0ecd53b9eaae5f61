package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
	"github.com/daniel-torresc/emerald-backend-sub002/mock"
)

type fixture struct {
	service  *ApplicationService
	set      *mock.RepositorySet
	recorder *mock.Recorder

	owner *user.User
	inst  *institution.FinancialInstitution
	atype *accounttype.AccountType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	set := mock.NewRepositorySet()
	recorder := mock.NewRecorder()

	owner, err := user.New("owner@example.com", "Account Owner")
	require.NoError(t, err)
	set.Users.Seed(owner)

	inst, err := institution.New("BANK-1", "Some Bank", "ES")
	require.NoError(t, err)
	set.Institutions.Seed(inst)

	atype, err := accounttype.New("CHECKING", "Checking account")
	require.NoError(t, err)
	set.AccountTypes.Seed(atype)

	return &fixture{
		service:  NewApplicationService(mock.NewUnitOfWorkFactory(set), set.View(), recorder),
		set:      set,
		recorder: recorder,
		owner:    owner,
		inst:     inst,
		atype:    atype,
	}
}

func (f *fixture) openRequest(number string) OpenAccountRequest {
	return OpenAccountRequest{
		UserID:        f.owner.ID,
		InstitutionID: f.inst.ID,
		AccountTypeID: f.atype.ID,
		Number:        number,
		Currency:      "EUR",
	}
}

func (f *fixture) seedAccount(t *testing.T, number string) *account.Account {
	t.Helper()
	a, err := account.New(f.owner.ID, f.inst.ID, f.atype.ID, number, "", "EUR")
	require.NoError(t, err)
	f.set.Accounts.Seed(a)
	return a
}

func TestOpenAccount(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Open(context.Background(), f.openRequest("ACC-1"))
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "0", resp.Balance.Amount)
	assert.Equal(t, "EUR", resp.Balance.Currency)

	require.Equal(t, 1, f.recorder.Len())
	e := f.recorder.Last()
	assert.Equal(t, "account.open", e.Action)
	assert.Equal(t, audit.OutcomeSuccess, e.Outcome)
}

func TestOpenAccountRejectsInactiveOwner(t *testing.T) {
	f := newFixture(t)
	f.owner.Deactivate()
	f.set.Users.Seed(f.owner)

	_, err := f.service.Open(context.Background(), f.openRequest("ACC-2"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	// The whole scope rolled back.
	found, _ := f.set.Accounts.FindByNumber(context.Background(), "ACC-2")
	assert.Nil(t, found)
	assert.Equal(t, audit.OutcomeFailure, f.recorder.Last().Outcome)
}

func TestOpenAccountRejectsMissingInstitution(t *testing.T) {
	f := newFixture(t)

	req := f.openRequest("ACC-3")
	req.InstitutionID = "ghost"
	_, err := f.service.Open(context.Background(), req)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestOpenAccountDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	f.seedAccount(t, "ACC-DUP")

	_, err := f.service.Open(context.Background(), f.openRequest("ACC-DUP"))
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestDepositAndWithdraw(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-MONEY")
	ctx := context.Background()

	resp, err := f.service.Deposit(ctx, a.ID, AmountRequest{Amount: "100.10", Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "100.1", resp.Balance.Amount)

	resp, err = f.service.Withdraw(ctx, a.ID, AmountRequest{Amount: "0.35", Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "99.75", resp.Balance.Amount)

	// One event per movement.
	assert.Equal(t, 2, f.recorder.Len())
	assert.Equal(t, "account.withdraw", f.recorder.Last().Action)
}

func TestWithdrawOverdraftIsRejected(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-POOR")
	ctx := context.Background()

	_, err := f.service.Deposit(ctx, a.ID, AmountRequest{Amount: "10", Currency: "EUR"})
	require.NoError(t, err)

	_, err = f.service.Withdraw(ctx, a.ID, AmountRequest{Amount: "10.01", Currency: "EUR"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	// The balance kept its pre-withdrawal value.
	current, _ := f.set.Accounts.FindByID(ctx, a.ID)
	assert.Equal(t, "10", current.Balance.Amount.String())
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-ZERO")

	for _, amount := range []string{"0", "-5", "not-a-number"} {
		_, err := f.service.Deposit(context.Background(), a.ID, AmountRequest{Amount: amount, Currency: "EUR"})
		assert.Error(t, err, amount)
	}
	// Rejected before any scope opened; nothing to audit.
	assert.Equal(t, 0, f.recorder.Len())
}

func TestFreezeBlocksMovements(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-ICE")
	ctx := context.Background()

	_, err := f.service.Freeze(ctx, a.ID)
	require.NoError(t, err)

	_, err = f.service.Deposit(ctx, a.ID, AmountRequest{Amount: "5", Currency: "EUR"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	resp, err := f.service.Unfreeze(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}

func TestCloseRequiresZeroBalance(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-CLOSE")
	ctx := context.Background()

	_, err := f.service.Deposit(ctx, a.ID, AmountRequest{Amount: "1", Currency: "EUR"})
	require.NoError(t, err)

	_, err = f.service.Close(ctx, a.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = f.service.Withdraw(ctx, a.ID, AmountRequest{Amount: "1", Currency: "EUR"})
	require.NoError(t, err)

	resp, err := f.service.Close(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", resp.Status)
}

func TestGetAccountHiddenFromNonOwner(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-MINE")

	ctx := shared.ContextWithActor(context.Background(), f.owner.ID)
	resp, err := f.service.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.ID)

	// A different actor sees NotFound, not Forbidden.
	stranger := shared.ContextWithActor(context.Background(), "someone-else")
	_, err = f.service.Get(stranger, a.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestListRestrictedToActor(t *testing.T) {
	f := newFixture(t)
	mine := f.seedAccount(t, "ACC-A")

	other, err := account.New("other-user", f.inst.ID, f.atype.ID, "ACC-B", "", "EUR")
	require.NoError(t, err)
	f.set.Accounts.Seed(other)

	ctx := shared.ContextWithActor(context.Background(), f.owner.ID)
	resp, err := f.service.List(ctx, ListAccountsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, mine.ID, resp.Accounts[0].ID)
}

func TestMutateByNonOwnerIsNotFound(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-SAFE")

	stranger := shared.ContextWithActor(context.Background(), "someone-else")
	_, err := f.service.Deposit(stranger, a.ID, AmountRequest{Amount: "5", Currency: "EUR"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	current, _ := f.set.Accounts.FindByID(context.Background(), a.ID)
	assert.True(t, current.Balance.Amount.IsZero())
}

func TestDeleteAccountWithCardsIsRestricted(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-CARDED")

	c, err := card.New(a.ID, nil, "4242", card.NetworkVisa, 12, 2030)
	require.NoError(t, err)
	f.set.Cards.Seed(c)

	err = f.service.Delete(context.Background(), a.ID)
	assert.True(t, errors.Is(err, shared.ErrConflict))

	found, _ := f.set.Accounts.FindByID(context.Background(), a.ID)
	assert.NotNil(t, found)
}

func TestDeleteAccountByNonOwnerIsSilent(t *testing.T) {
	f := newFixture(t)
	a := f.seedAccount(t, "ACC-KEEP")

	stranger := shared.ContextWithActor(context.Background(), "someone-else")
	require.NoError(t, f.service.Delete(stranger, a.ID))

	// Nothing happened.
	found, _ := f.set.Accounts.FindByID(context.Background(), a.ID)
	assert.NotNil(t, found)
}
