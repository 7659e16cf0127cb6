package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocify/price-service/internal/model"
)

// CookieName carries the token between browser sessions; the Authorization
// header is the fallback for non-browser clients.
const CookieName = "auth_token"

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Middleware resolves the caller's identity before core operations run.
func Middleware(tokens *TokenManager, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is missing. Please login."})
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token. Please login again."})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		SetUserID(c, user.ID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
