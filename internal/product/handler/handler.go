package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/auth"
	"github.com/grocify/price-service/internal/product"
	"github.com/grocify/price-service/internal/product/dto"
	"github.com/grocify/price-service/pkg/apperrors"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

// Search handles POST /search.
func (h *ProductHandler) Search(c *gin.Context) {
	var input dto.SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}

	result, err := h.uc.Search(c.Request.Context(), auth.GetUserID(c), input.ProductName)
	if err != nil {
		h.respondError(c, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProduct handles GET /product/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Suggest handles GET /products/suggest?q=.
func (h *ProductHandler) Suggest(c *gin.Context) {
	suggestions, err := h.uc.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"suggestions": []dto.Suggestion{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// SearchHistory handles GET /search-history.
func (h *ProductHandler) SearchHistory(c *gin.Context) {
	entries, err := h.uc.SearchHistory(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		h.respondError(c, err, "failed to fetch search history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *ProductHandler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(err)})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.Message(err)})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
