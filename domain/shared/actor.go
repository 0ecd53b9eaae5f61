package shared

import "context"

type actorKey struct{}

// ContextWithActor attaches the authenticated actor id. Set at the HTTP
// boundary, read by application services for ownership checks and audit.
func ContextWithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the actor id, or "" when the request was not
// authenticated.
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok {
		return id
	}
	return ""
}
