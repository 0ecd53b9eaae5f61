package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
	"github.com/daniel-torresc/emerald-backend-sub002/mock"
)

type fixture struct {
	service  *ApplicationService
	set      *mock.RepositorySet
	factory  *mock.UnitOfWorkFactory
	recorder *mock.Recorder
}

func newFixture() *fixture {
	set := mock.NewRepositorySet()
	factory := mock.NewUnitOfWorkFactory(set)
	recorder := mock.NewRecorder()
	return &fixture{
		service:  NewApplicationService(factory, set.View(), recorder),
		set:      set,
		factory:  factory,
		recorder: recorder,
	}
}

func seedUser(t *testing.T, f *fixture, email string) *user.User {
	t.Helper()
	u, err := user.New(email, "Seeded User")
	require.NoError(t, err)
	f.set.Users.Seed(u)
	return u
}

func TestCreateUser(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), CreateUserRequest{
		Email:    "Ana@Example.com",
		FullName: "Ana Torres",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.Email)
	assert.True(t, resp.Active)

	require.Equal(t, 1, f.recorder.Len())
	e := f.recorder.Last()
	assert.Equal(t, "user.create", e.Action)
	assert.Equal(t, audit.OutcomeSuccess, e.Outcome)
	assert.Equal(t, resp.ID, e.AggregateID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture()
	seedUser(t, f, "dup@example.com")

	_, err := f.service.Create(context.Background(), CreateUserRequest{
		Email:    "dup@example.com",
		FullName: "Second",
	})
	assert.True(t, errors.Is(err, shared.ErrConflict))

	// The failed attempt is still audited, as a failure.
	require.Equal(t, 1, f.recorder.Len())
	e := f.recorder.Last()
	assert.Equal(t, audit.OutcomeFailure, e.Outcome)
	assert.Equal(t, "email already registered", e.Detail)
}

func TestUpdateProfileSelf(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f, "self@example.com")

	ctx := shared.ContextWithActor(context.Background(), u.ID)
	resp, err := f.service.UpdateProfile(ctx, u.ID, UpdateUserRequest{FullName: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.FullName)

	require.Equal(t, 1, f.recorder.Len())
	e := f.recorder.Last()
	assert.Equal(t, "user.update", e.Action)
	assert.Equal(t, u.ID, e.ActorID)
	assert.NotNil(t, e.Before)
	assert.NotNil(t, e.After)
}

func TestUpdateProfileByAnotherActorIsForbidden(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f, "victim@example.com")

	ctx := shared.ContextWithActor(context.Background(), "someone-else")
	_, err := f.service.UpdateProfile(ctx, u.ID, UpdateUserRequest{FullName: "Hijacked"})
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))

	// Rejected before any scope opened: nothing changed, nothing audited.
	current, _ := f.set.Users.FindByID(context.Background(), u.ID)
	assert.Equal(t, "Seeded User", current.FullName)
	assert.Equal(t, 0, f.recorder.Len())
}

func TestUpdateProfileMissingUser(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateProfile(context.Background(), "ghost", UpdateUserRequest{FullName: "X"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f, "gone@example.com")

	require.NoError(t, f.service.Delete(context.Background(), u.ID))

	found, err := f.set.Users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.Equal(t, 1, f.recorder.Len())
	assert.Equal(t, "user.delete", f.recorder.Last().Action)
}

func TestDeleteMissingUserIsIdempotent(t *testing.T) {
	f := newFixture()

	assert.NoError(t, f.service.Delete(context.Background(), "never-existed"))
	assert.Equal(t, audit.OutcomeSuccess, f.recorder.Last().Outcome)
}

func TestDeleteUserWithAccountsIsRestricted(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f, "owner@example.com")

	a, err := account.New(u.ID, "inst-1", "type-1", "ACC-1", "", "EUR")
	require.NoError(t, err)
	f.set.Accounts.Seed(a)

	err = f.service.Delete(context.Background(), u.ID)
	assert.True(t, errors.Is(err, shared.ErrConflict))

	// The user survives.
	found, _ := f.set.Users.FindByID(context.Background(), u.ID)
	assert.NotNil(t, found)
	assert.Equal(t, audit.OutcomeFailure, f.recorder.Last().Outcome)
}

func TestCreateUserCommitFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.factory.NextCommitErr = shared.NewInfrastructureError("transaction", "commit failed", false)

	_, err := f.service.Create(context.Background(), CreateUserRequest{
		Email:    "lost@example.com",
		FullName: "Lost",
	})
	assert.Error(t, err)

	found, _ := f.set.Users.FindByEmail(context.Background(), "lost@example.com")
	assert.Nil(t, found)
	assert.Equal(t, audit.OutcomeFailure, f.recorder.Last().Outcome)
}
