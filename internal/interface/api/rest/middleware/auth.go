package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/jwt"
)

const CtxUser = "currentUser"

// AuthMiddleware verifies the bearer token and resolves it to a live user row.
// Inactive users get the same answer as a bad token so the endpoint never
// reveals whether an account exists but is disabled.
func AuthMiddleware(jwtService *jwt.Service, users domain.Repository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.Verify(tokenStr)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": err.Error()},
			)
			return
		}

		userUUID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": jwt.ErrTokenMissingClaims.Error()},
			)
			return
		}

		u, err := users.FetchUserByID(c.Request.Context(), userUUID)
		if err != nil {
			logger.Error("FetchUserByID() error", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to authenticate"},
			)
			return
		}
		if u == nil || !u.IsActive {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": jwt.ErrTokenMalformed.Error()},
			)
			return
		}

		c.Set(CtxUser, u)

		c.Next()
	}
}

// RequireSuperuser must run after AuthMiddleware.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsSuperuser {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "superuser privileges required"},
			)
			return
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
