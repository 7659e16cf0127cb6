package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/predict/dto"
	"github.com/grocify/price-service/internal/predict/usecase"
	"github.com/grocify/price-service/pkg/apperrors"
)

type PredictHandler struct {
	uc     usecase.UseCase
	logger *zap.Logger
}

func NewPredictHandler(uc usecase.UseCase, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{uc: uc, logger: logger}
}

// Predict handles POST /predict.
func (h *PredictHandler) Predict(c *gin.Context) {
	var input dto.PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, insufficient, err := h.uc.Predict(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(err)})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": apperrors.Message(err)})
		default:
			h.logger.Error("prediction failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	if insufficient != nil {
		// Distinct from a hard failure: the caller learns how many records
		// exist so far.
		c.JSON(http.StatusBadRequest, insufficient)
		return
	}

	c.JSON(http.StatusOK, result)
}
