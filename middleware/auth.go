package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mzhao28/commune/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextTokenKey stores the raw bearer token for logout.
	ContextTokenKey = "bearer_token"
)

// AuthRequired ensures the request carries a valid, non-revoked JWT.
func AuthRequired(tokens *utils.TokenManager, revoked *utils.TokenStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "authorization header missing or malformed")
			ctx.Abort()
			return
		}

		if revoked.IsRevoked(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "unauthenticated", "token revoked")
			ctx.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "unauthenticated", "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

// AuthOptional resolves a viewer identity when a valid bearer token is
// present and lets the request proceed anonymously otherwise. Reads that
// compute is_liked / is_member use this.
func AuthOptional(tokens *utils.TokenManager, revoked *utils.TokenStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)
		if !ok || revoked.IsRevoked(tokenString) {
			ctx.Next()
			return
		}
		if claims, err := tokens.Parse(tokenString); err == nil {
			ctx.Set(ContextUserIDKey, claims.UserID)
			ctx.Set(ContextTokenKey, tokenString)
		}
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
