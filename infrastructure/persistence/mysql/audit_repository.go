package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

// AuditRepository writes audit records on its own database handle. It
// deliberately ignores any transaction in context: audit writes happen
// after the business commit, on a separate best-effort channel, and must
// never join or abort the business transaction.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Save(ctx context.Context, e audit.Event) error {
	logPO, err := po.FromAuditEvent(e)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(logPO).Error; err != nil {
		return TranslateError("audit_log", err)
	}
	return nil
}

// FindByAggregate returns the audit trail for one aggregate, newest first.
// Historical references stay valid even when the aggregate is soft-deleted.
func (r *AuditRepository) FindByAggregate(ctx context.Context, aggregateType, aggregateID string, limit int) ([]*po.AuditLogPO, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []*po.AuditLogPO
	err := r.db.WithContext(ctx).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, TranslateError("audit_log", err)
	}
	return logs, nil
}

var _ audit.Store = (*AuditRepository)(nil)
