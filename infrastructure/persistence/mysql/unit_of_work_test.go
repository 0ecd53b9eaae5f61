package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/retry"
)

func newTestUnitOfWork(db *gorm.DB) *UnitOfWork {
	uow := NewUnitOfWork(db)
	uow.SetRetryConfig(retry.Config{
		Enabled:       true,
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	})
	return uow
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table("users").Count(&n).Error)
	return n
}

func TestUnitOfWorkCommitPersists(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	err := uow.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		u, err := user.New("commit@example.com", "Commit User")
		if err != nil {
			return err
		}
		return repos.Users().Insert(ctx, u)
	})
	require.NoError(t, err)

	found, err := NewUserRepository(db).FindByEmail(context.Background(), "commit@example.com")
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestUnitOfWorkErrorRollsBack(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	boom := shared.NewValidationError("user", "email", "rejected")
	err := uow.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		u, err := user.New("gone@example.com", "Never Persisted")
		if err != nil {
			return err
		}
		if err := repos.Users().Insert(ctx, u); err != nil {
			return err
		}
		return boom
	})
	assert.Equal(t, boom, err)

	// The insert before the failure left no trace.
	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestUnitOfWorkPanicRollsBackAndRepanics(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	assert.PanicsWithValue(t, "midway failure", func() {
		_ = uow.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
			u, _ := user.New("panic@example.com", "Panic User")
			if err := repos.Users().Insert(ctx, u); err != nil {
				return err
			}
			panic("midway failure")
		})
	})

	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestUnitOfWorkCancellationBlocksCommit(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	ctx, cancel := context.WithCancel(context.Background())
	err := uow.Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		u, _ := user.New("cancelled@example.com", "Cancelled User")
		if err := repos.Users().Insert(ctx, u); err != nil {
			return err
		}
		// Cancelled after the write but before commit.
		cancel()
		return nil
	})
	assert.True(t, errors.Is(err, shared.ErrInfrastructure))

	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestUnitOfWorkCancelledBeforeStartNeverBegins(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := uow.Execute(ctx, func(ctx context.Context, repos domain.Repositories) error {
		calls++
		return nil
	})
	assert.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestUnitOfWorkReposShareOneTransaction(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	err := uow.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		u, err := user.New("visible@example.com", "In Scope")
		if err != nil {
			return err
		}
		if err := repos.Users().Insert(ctx, u); err != nil {
			return err
		}

		// An uncommitted write is already visible through the scope's
		// own repositories.
		found, err := repos.Users().FindByEmail(ctx, "visible@example.com")
		if err != nil {
			return err
		}
		require.NotNil(t, found)
		return nil
	})
	require.NoError(t, err)
}

func TestUnitOfWorkRetriesTransientScopes(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		attempts++
		u, err := user.New("retry@example.com", "Retry User")
		if err != nil {
			return err
		}
		if err := repos.Users().Insert(ctx, u); err != nil {
			return err
		}
		if attempts < 3 {
			return shared.NewInfrastructureError("transaction", "storage deadlock detected", true)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	// The two failed scopes rolled back; exactly one row survives.
	assert.Equal(t, int64(1), countUsers(t, db))
}

func TestUnitOfWorkNeverRetriesBusinessFailures(t *testing.T) {
	db := newTestDB(t)
	uow := newTestUnitOfWork(db)

	attempts := 0
	conflict := shared.NewConflictError("user", "user modified concurrently")
	err := uow.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		attempts++
		return conflict
	})
	assert.Equal(t, conflict, err)
	assert.Equal(t, 1, attempts)
}

func TestUnitOfWorkFactoryBuildsConfiguredScopes(t *testing.T) {
	db := newTestDB(t)
	factory := NewUnitOfWorkFactory(db, nil)

	first := factory.New()
	second := factory.New()
	assert.NotSame(t, first, second)

	err := first.Execute(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		return nil
	})
	assert.NoError(t, err)
}
