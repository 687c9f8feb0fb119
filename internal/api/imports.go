package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/models"
)

// ImportHandler serves the batch import endpoint.
type ImportHandler struct {
	importer ImportService
	batches  BatchSource
	log      *logrus.Logger
}

// NewImportHandler creates an ImportHandler. batches may be nil when no
// batch bucket is configured; object-keyed imports then return an error.
func NewImportHandler(importer ImportService, batches BatchSource, log *logrus.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, batches: batches, log: log}
}

// Create handles POST /api/v1/imports. The request names either a staged
// batch object or carries records inline, never both.
func (h *ImportHandler) Create(c *gin.Context) {
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.Policy == "" {
		req.Policy = models.PolicyIgnore
	}
	if !req.Policy.Valid() {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, models.ErrInvalidPolicy.Error())

		return
	}

	if (req.Object == "") == (len(req.Records) == 0) {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError,
			"exactly one of object or records must be provided")

		return
	}

	records := req.Records
	if req.Object != "" {
		if h.batches == nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError,
				"no batch bucket configured, send records inline")

			return
		}

		var err error
		records, err = h.batches.ReadBatch(c.Request.Context(), req.Object)
		if err != nil {
			h.log.WithError(err).WithField("object", req.Object).Error("reading batch object")
			respondError(c, http.StatusBadGateway, ErrCodeUpstreamError, "could not read batch object")

			return
		}
	}

	result, err := h.importer.Run(c.Request.Context(), req.Object, records, req.Policy)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPolicy) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).WithField("object", req.Object).Error("import failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "import failed, batch rolled back")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":    "import.create",
		"object":    req.Object,
		"policy":    req.Policy,
		"processed": result.Processed,
	}).Info("audit")

	c.JSON(http.StatusOK, result)
}
