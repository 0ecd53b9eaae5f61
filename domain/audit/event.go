// Package audit defines the audit trail seam: an immutable record of who
// did what to which aggregate, with what outcome. Records are created by
// the application layer after a commit, never mutated, never deleted.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one audit record. Before/After hold enough state to reconstruct
// the change; either may be nil (e.g. no Before on create).
type Event struct {
	ID            string
	ActorID       string
	Action        string // "account.open", "card.block", ...
	AggregateType string
	AggregateID   string
	Outcome       Outcome
	Detail        string // failure reason on OutcomeFailure
	Before        any
	After         any
	OccurredAt    time.Time
}

func NewEvent(actorID, action, aggregateType, aggregateID string, outcome Outcome) Event {
	return Event{
		ID:            uuid.New().String(),
		ActorID:       actorID,
		Action:        action,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Outcome:       outcome,
		OccurredAt:    time.Now().UTC(),
	}
}

// Recorder accepts events fire-and-forget. Implementations must never block
// or fail the business transaction; a failed write is logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Store persists events. Used by Recorder implementations, runs outside the
// business transaction scope.
type Store interface {
	Save(ctx context.Context, e Event) error
}
