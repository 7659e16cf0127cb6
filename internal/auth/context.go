package auth

import "github.com/gin-gonic/gin"

const userIDKey = "user_id"

// SetUserID is called by the middleware once a token has been verified.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}

// GetUserID returns the authenticated user id, or "" when unauthenticated.
func GetUserID(c *gin.Context) string {
	if val, ok := c.Get(userIDKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
