package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/response"
)

// UserIDKey is the context key for the authenticated user's ID.
const UserIDKey = "user_id"

// TokenKey is the context key for the bearer token of the request.
const TokenKey = "token"

// Authenticator resolves a login token to a user ID.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenID string) (int64, error)
}

// Auth requires an "Authorization: Bearer <token>" header naming a live
// token. On success the user ID and token are stored in the context.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "missing bearer token", requestID)
			c.Abort()
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.FromDomainError(c, err, requestID)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID returns the authenticated user's ID, or 0 outside Auth.
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}

// GetToken returns the bearer token accepted by Auth.
func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
