package po

import (
	"encoding/json"
	"time"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
)

// AuditLogPO rows are insert-only: never updated, never deleted, and they
// deliberately carry no DeletedAt. Aggregate ids stay joinable even after
// the aggregate itself is soft-deleted.
type AuditLogPO struct {
	ID            string `gorm:"primaryKey;size:36"`
	ActorID       string `gorm:"size:36;index;not null"`
	Action        string `gorm:"size:64;not null"`
	AggregateType string `gorm:"size:32;not null;index:ix_audit_aggregate"`
	AggregateID   string `gorm:"size:36;not null;index:ix_audit_aggregate"`
	Outcome       string `gorm:"size:16;not null"`
	Detail        string `gorm:"size:500"`
	Before        *string `gorm:"type:text"`
	After         *string `gorm:"type:text"`
	OccurredAt    time.Time `gorm:"not null;index"`
}

func (AuditLogPO) TableName() string {
	return "audit_logs"
}

func FromAuditEvent(e audit.Event) (*AuditLogPO, error) {
	before, err := marshalState(e.Before)
	if err != nil {
		return nil, err
	}
	after, err := marshalState(e.After)
	if err != nil {
		return nil, err
	}
	return &AuditLogPO{
		ID:            e.ID,
		ActorID:       e.ActorID,
		Action:        e.Action,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		Outcome:       string(e.Outcome),
		Detail:        e.Detail,
		Before:        before,
		After:         after,
		OccurredAt:    e.OccurredAt,
	}, nil
}

func marshalState(state any) (*string, error) {
	if state == nil {
		return nil, nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}
