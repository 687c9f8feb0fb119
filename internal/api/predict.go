package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/models"
)

// PredictHandler serves the success prediction endpoint.
type PredictHandler struct {
	svc PredictService
	log *logrus.Logger
}

// NewPredictHandler creates a PredictHandler.
func NewPredictHandler(svc PredictService, log *logrus.Logger) *PredictHandler {
	return &PredictHandler{svc: svc, log: log}
}

// Predict handles POST /api/v1/predict.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if strings.TrimSpace(req.Title) == "" {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "title must not be empty")

		return
	}

	pred, err := h.svc.Predict(req)
	if err != nil {
		if errors.Is(err, models.ErrPredictorNotReady) {
			respondError(c, http.StatusServiceUnavailable, ErrCodeNotReady, err.Error())

			return
		}

		h.log.WithError(err).Error("scoring prediction")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":      "predict",
		"title":       pred.Title,
		"probability": pred.Probability,
	}).Info("audit")

	c.JSON(http.StatusOK, pred)
}
