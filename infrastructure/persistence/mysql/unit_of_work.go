package mysql

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/retry"
	"github.com/daniel-torresc/emerald-backend-sub002/pkg/logger"
)

type scopeState int

const (
	scopeOpen scopeState = iota
	scopeCommitted
	scopeRolledBack
)

// UnitOfWork runs application closures inside one database transaction.
//
// Lifecycle per Execute call: acquire a session from the pool, begin a
// transaction (scope Open), hydrate a RepositorySet bound to it, run the
// closure, then move to exactly one terminal state. Commit happens only on
// a clean return with a live context; every other exit (error, panic,
// cancellation) rolls back, so a partial write can never become durable.
//
// Transient infrastructure failures are retried as a whole scope, bounded
// by the retry configuration.
type UnitOfWork struct {
	db             *gorm.DB
	retryConfig    retry.Config
	acquireTimeout time.Duration
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		retryConfig: retry.DefaultConfig,
	}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

func (u *UnitOfWork) SetAcquireTimeout(d time.Duration) {
	u.acquireTimeout = d
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	executeOnce := func(ctx context.Context) error {
		return u.runScope(ctx, fn)
	}
	return retry.Execute(ctx, u.retryConfig, executeOnce)
}

// acquireProbe fails fast when the pool is exhausted: a ping checks a
// session out of the pool (waiting at most acquireTimeout) instead of
// letting the scope queue indefinitely behind the pool.
func (u *UnitOfWork) acquireProbe(ctx context.Context) error {
	if u.acquireTimeout <= 0 {
		return nil
	}
	sqlDB, err := u.db.DB()
	if err != nil {
		return shared.NewInfrastructureError("transaction", "database handle unavailable", false)
	}
	probeCtx, cancel := context.WithTimeout(ctx, u.acquireTimeout)
	defer cancel()
	if err := sqlDB.PingContext(probeCtx); err != nil {
		return shared.NewInfrastructureError("transaction", "could not acquire a database session", true)
	}
	return nil
}

func (u *UnitOfWork) runScope(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return TranslateError("transaction", err)
	}
	if err := u.acquireProbe(ctx); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return TranslateError("transaction", tx.Error)
	}

	state := scopeOpen
	rollback := func() {
		logRollback(tx.Rollback().Error)
		state = scopeRolledBack
	}
	defer func() {
		if p := recover(); p != nil {
			if state == scopeOpen {
				rollback()
			}
			panic(p)
		}
	}()

	txCtx := persistence.ContextWithTx(ctx, tx)
	repos := NewRepositorySet(tx)

	if err := fn(txCtx, repos); err != nil {
		rollback()
		return err
	}

	// A cancelled operation must never commit, even if the closure
	// finished cleanly.
	if err := ctx.Err(); err != nil {
		rollback()
		return TranslateError("transaction", err)
	}

	if err := tx.Commit().Error; err != nil {
		rollback()
		return TranslateError("transaction", err)
	}
	state = scopeCommitted
	return nil
}

func logRollback(err error) {
	if err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		logger.Warn("transaction rollback reported an error", zap.Error(err))
	}
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
