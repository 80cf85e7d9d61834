package v1

import (
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const (
	userContextKey  = "user"
	tokenContextKey = "token"
)

// AuthMiddleware resolves the bearer token of a request to its user and
// rejects the request when that fails
func AuthMiddleware(authService users.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := tokenFromHeader(ctx.GetHeader("Authorization"))

		user, err := authService.Authenticate(ctx, key)
		if err != nil {
			respondError(ctx, err)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Set(tokenContextKey, key)
		ctx.Next()
	}
}

// tokenFromHeader accepts "Bearer <key>" and "Token <key>".
func tokenFromHeader(header string) string {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		return strings.TrimSpace(key)
	default:
		return ""
	}
}

// currentUser returns the user set by AuthMiddleware.
func currentUser(ctx *gin.Context) *users.User {
	if v, ok := ctx.Get(userContextKey); ok {
		if user, ok := v.(*users.User); ok {
			return user
		}
	}
	return nil
}
