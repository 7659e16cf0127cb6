package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/auth"
	"github.com/grocify/price-service/internal/user"
	"github.com/grocify/price-service/internal/user/dto"
	"github.com/grocify/price-service/pkg/apperrors"
)

type UserHandler struct {
	uc     user.UseCase
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewUserHandler(uc user.UseCase, tokens *auth.TokenManager, logger *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, tokens: tokens, logger: logger}
}

// Signup handles POST /auth/signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: username, email, password"})
		return
	}

	u, err := h.uc.Signup(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(u.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    u,
		"token":   token,
	})
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	u, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(u.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    u,
		"token":   token,
	})
}

// Logout handles POST /auth/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Verify handles GET /auth/verify; the auth middleware has already resolved
// the user when this runs.
func (h *UserHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": auth.GetUserID(c), "valid": true})
}

func (h *UserHandler) setAuthCookie(c *gin.Context, token string) {
	// secure=false matches local development; terminate TLS in front of the
	// service in production.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.tokens.TTL().Seconds()), "/", "", false, true)
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(err)})
	default:
		h.logger.Error("auth request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
