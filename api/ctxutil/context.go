// Package ctxutil bridges gin's per-request context to the plain
// context.Context the application and persistence layers consume.
package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/middleware"
	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence"
)

// RequestContext carries the request id and the authenticated actor into
// the layers below the API.
func RequestContext(c *gin.Context) context.Context {
	ctx := persistence.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
	if actor := middleware.ActorFromGin(c); actor != "" {
		ctx = shared.ContextWithActor(ctx, actor)
	}
	return ctx
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
