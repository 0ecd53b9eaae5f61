package audit

import (
	"context"

	domainaudit "github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

// Report builds and enqueues the single audit event for a finished
// state-changing operation. Called after the transaction scope has ended,
// success or failure; a nil recorder makes it a no-op.
func Report(ctx context.Context, rec domainaudit.Recorder, action, aggregateType, aggregateID string, before, after any, opErr error) {
	if rec == nil {
		return
	}

	outcome := domainaudit.OutcomeSuccess
	if opErr != nil {
		outcome = domainaudit.OutcomeFailure
	}

	e := domainaudit.NewEvent(shared.ActorFromContext(ctx), action, aggregateType, aggregateID, outcome)
	if opErr != nil {
		e.Detail = opErr.Error()
	}
	e.Before = before
	e.After = after
	rec.Record(ctx, e)
}
