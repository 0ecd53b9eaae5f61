package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
)

func TestAuditRepositorySaveAndFind(t *testing.T) {
	repo := NewAuditRepository(newTestDB(t))
	ctx := context.Background()

	e := audit.NewEvent("actor-1", "account.open", "account", "acct-1", audit.OutcomeSuccess)
	e.After = map[string]string{"number": "ACC-1", "currency": "EUR"}
	require.NoError(t, repo.Save(ctx, e))

	failure := audit.NewEvent("actor-1", "account.withdraw", "account", "acct-1", audit.OutcomeFailure)
	failure.Detail = "insufficient balance"
	require.NoError(t, repo.Save(ctx, failure))

	unrelated := audit.NewEvent("actor-2", "card.issue", "card", "card-1", audit.OutcomeSuccess)
	require.NoError(t, repo.Save(ctx, unrelated))

	logs, err := repo.FindByAggregate(ctx, "account", "acct-1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, "account.withdraw", logs[0].Action)
	assert.Equal(t, "insufficient balance", logs[0].Detail)
	assert.Nil(t, logs[0].After)

	assert.Equal(t, "account.open", logs[1].Action)
	require.NotNil(t, logs[1].After)
	assert.Contains(t, *logs[1].After, `"number":"ACC-1"`)
	assert.Nil(t, logs[1].Before)
}

func TestAuditRepositoryLimit(t *testing.T) {
	repo := NewAuditRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, audit.NewEvent("actor-1", "user.update", "user", "user-1", audit.OutcomeSuccess)))
	}

	logs, err := repo.FindByAggregate(ctx, "user", "user-1", 3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
