package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	"github.com/daniel-torresc/emerald-backend-sub002/config"
	"github.com/daniel-torresc/emerald-backend-sub002/pkg/errors"
)

// ActorKey is the gin context key holding the authenticated actor id.
const ActorKey = "actor_id"

// AuthMiddleware verifies a bearer token (HMAC-signed JWT) and stores the
// subject claim as the actor id. Token issuance belongs to an external
// identity service; this backend only verifies.
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims := jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
		if err != nil || !parsed.Valid || claims.Subject == "" {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ActorKey, claims.Subject)
		c.Next()
	}
}

// ActorFromGin returns the authenticated actor id, or "".
func ActorFromGin(c *gin.Context) string {
	if actor, exists := c.Get(ActorKey); exists {
		if id, ok := actor.(string); ok {
			return id
		}
	}
	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Success:   false,
		Error:     string(errors.CodeUnauthorized),
		Message:   message,
		Code:      http.StatusUnauthorized,
		RequestID: response.GetRequestID(c),
	})
}
