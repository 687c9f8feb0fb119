package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/models"
)

// AskHandler serves the natural-language query endpoint.
type AskHandler struct {
	svc AskService
	log *logrus.Logger
}

// NewAskHandler creates an AskHandler.
func NewAskHandler(svc AskService, log *logrus.Logger) *AskHandler {
	return &AskHandler{svc: svc, log: log}
}

const maxQuestionLen = 500

// Ask handles POST /api/v1/ask.
func (h *AskHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "question must not be empty")

		return
	}
	if len(question) > maxQuestionLen {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "question too long")

		return
	}

	resp, err := h.svc.Ask(c.Request.Context(), question)
	if err != nil {
		if errors.Is(err, models.ErrNoTranslation) {
			respondError(c, http.StatusUnprocessableEntity, ErrCodeValidationError,
				"could not translate question into a query")

			return
		}

		h.log.WithError(err).Error("answering question")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":   "ask",
		"strategy": resp.Strategy,
		"rows":     len(resp.Rows),
	}).Info("audit")

	c.JSON(http.StatusOK, resp)
}
