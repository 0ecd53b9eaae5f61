package mysql

import (
	"time"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/config"
	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/retry"
)

// UnitOfWorkFactory hands out fresh Unit-of-Work scopes over a shared
// connection pool. Scopes are single-use; callers ask the factory for a new
// one per operation.
type UnitOfWorkFactory struct {
	db             *gorm.DB
	retryConfig    retry.Config
	acquireTimeout time.Duration
}

func NewUnitOfWorkFactory(db *gorm.DB, cfg *config.DatabaseConfig) *UnitOfWorkFactory {
	f := &UnitOfWorkFactory{
		db:          db,
		retryConfig: retry.DefaultConfig,
	}
	if cfg != nil {
		f.retryConfig = retry.FromAppConfig(cfg.Retry)
		f.acquireTimeout = cfg.AcquireTimeout
	}
	return f
}

func (f *UnitOfWorkFactory) New() domain.UnitOfWork {
	uow := NewUnitOfWork(f.db)
	uow.SetRetryConfig(f.retryConfig)
	uow.SetAcquireTimeout(f.acquireTimeout)
	return uow
}

var _ domain.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
