package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cvbuilder/api/internal/domain/entity"
	"github.com/cvbuilder/api/pkg/helpers"
	"github.com/cvbuilder/api/pkg/response"
)

const (
	CtxUserKey       = "currentUser"
	CtxUserIDKey     = "userID"
	CtxProviderIDKey = "providerID"
)

// UserResolver resolves the caller's local user record from the external
// provider id carried in the session token.
type UserResolver interface {
	FindByProviderID(ctx context.Context, providerID string) (*entity.User, error)
}

// Auth validates the bearer session token issued by the identity provider and
// resolves the local user (through the cache-backed lookup). Requests whose
// token is invalid, or whose provider id has no local user, are rejected.
func Auth(users UserResolver, verifier *helpers.SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid session token", nil)
			c.Abort()
			return
		}

		u, err := users.FindByProviderID(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error[any](c, http.StatusInternalServerError, "failed to resolve user", nil)
			c.Abort()
			return
		}
		if u == nil {
			response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxProviderIDKey, u.ProviderID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
