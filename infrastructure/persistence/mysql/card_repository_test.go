package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

func seedCard(t *testing.T, repo *CardRepository, accountID, lastFour string, institutionID *string) *card.Card {
	t.Helper()
	c, err := card.New(accountID, institutionID, lastFour, card.NetworkVisa, 12, 2030)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), c))
	return c
}

func TestCardRepositoryNullInstitutionRoundTrip(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	c := seedCard(t, repo, "acct-1", "4242", nil)

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	// Absent stays absent, never an empty-string sentinel.
	assert.Nil(t, found.InstitutionID)

	inst := "inst-1"
	withInst := seedCard(t, repo, "acct-1", "1111", &inst)

	found, err = repo.FindByID(ctx, withInst.ID)
	require.NoError(t, err)
	require.NotNil(t, found.InstitutionID)
	assert.Equal(t, "inst-1", *found.InstitutionID)
}

func TestCardRepositoryLastFourUniquePerAccount(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	seedCard(t, repo, "acct-1", "4242", nil)

	dup, err := card.New("acct-1", nil, "4242", card.NetworkMastercard, 1, 2031)
	require.NoError(t, err)
	err = repo.Insert(ctx, dup)
	assert.True(t, errors.Is(err, shared.ErrConflict))

	// The same digits on another account are fine.
	other, err := card.New("acct-2", nil, "4242", card.NetworkVisa, 1, 2031)
	require.NoError(t, err)
	assert.NoError(t, repo.Insert(ctx, other))
}

func TestCardRepositoryFindByAccountAndLastFour(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	c := seedCard(t, repo, "acct-1", "9999", nil)

	found, err := repo.FindByAccountAndLastFour(ctx, "acct-1", "9999")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c.ID, found.ID)

	missing, err := repo.FindByAccountAndLastFour(ctx, "acct-2", "9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCardRepositoryClearInstitution(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	inst := "inst-1"
	other := "inst-2"
	affected := seedCard(t, repo, "acct-1", "1111", &inst)
	alsoAffected := seedCard(t, repo, "acct-2", "2222", &inst)
	untouched := seedCard(t, repo, "acct-3", "3333", &other)

	require.NoError(t, repo.ClearInstitution(ctx, "inst-1"))

	for _, id := range []string{affected.ID, alsoAffected.ID} {
		c, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, c.InstitutionID)
	}

	c, err := repo.FindByID(ctx, untouched.ID)
	require.NoError(t, err)
	require.NotNil(t, c.InstitutionID)
	assert.Equal(t, "inst-2", *c.InstitutionID)
}

func TestCardRepositoryClearInstitutionInvalidatesStaleCopies(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	inst := "inst-1"
	c := seedCard(t, repo, "acct-1", "4242", &inst)

	stale, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stale.InstitutionID)

	require.NoError(t, repo.ClearInstitution(ctx, "inst-1"))

	// The pre-clear copy still carries the reference; its write must lose
	// the version check, not resurrect the cleared institution.
	err = repo.Update(ctx, stale)
	assert.True(t, errors.Is(err, shared.ErrConflict))

	current, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, current.InstitutionID)
}

func TestCardRepositoryCountByAccount(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	seedCard(t, repo, "acct-1", "1111", nil)
	seedCard(t, repo, "acct-1", "2222", nil)
	deleted := seedCard(t, repo, "acct-1", "3333", nil)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	count, err := repo.CountByAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCardRepositorySoftDeleteHidesFromNaturalKeyLookup(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	c := seedCard(t, repo, "acct-1", "4242", nil)
	require.NoError(t, repo.SoftDelete(ctx, c.ID))

	found, err := repo.FindByAccountAndLastFour(ctx, "acct-1", "4242")
	require.NoError(t, err)
	assert.Nil(t, found)

	// The soft-deleted row still occupies the unique index, so re-issuing
	// the same digits on that account conflicts.
	reissued, err := card.New("acct-1", nil, "4242", card.NetworkVisa, 1, 2031)
	require.NoError(t, err)
	err = repo.Insert(ctx, reissued)
	assert.True(t, errors.Is(err, shared.ErrConflict))
}
