package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GenreHandler serves genre read endpoints.
type GenreHandler struct {
	repo GenreRepository
	log  *logrus.Logger
}

// NewGenreHandler creates a GenreHandler.
func NewGenreHandler(repo GenreRepository, log *logrus.Logger) *GenreHandler {
	return &GenreHandler{repo: repo, log: log}
}

// List handles GET /api/v1/genres.
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.repo.ListGenres(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("listing genres")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}
