package mock

import (
	"context"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
)

// AuditStore records audit events in memory for assertions.
type AuditStore struct {
	mu     sync.Mutex
	events []audit.Event

	FailWith error
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Save(ctx context.Context, e audit.Event) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *AuditStore) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *AuditStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

var _ audit.Store = (*AuditStore)(nil)
