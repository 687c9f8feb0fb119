package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/metrics"
	"github.com/cinelake/cinelake/internal/models"
)

// MovieHandler serves movie read endpoints.
type MovieHandler struct {
	repo MovieRepository
	log  *logrus.Logger
}

// NewMovieHandler creates a MovieHandler.
func NewMovieHandler(repo MovieRepository, log *logrus.Logger) *MovieHandler {
	return &MovieHandler{repo: repo, log: log}
}

// List handles GET /api/v1/movies.
func (h *MovieHandler) List(c *gin.Context) {
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	// Over-fetch by one to detect a following page.
	movies, err := h.repo.ListMovies(c.Request.Context(), limit+1, offset)
	if err != nil {
		h.log.WithError(err).Error("listing movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	hasMore := len(movies) > limit
	if hasMore {
		movies = movies[:limit]
	}

	count, err := h.repo.CountMovies(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("counting movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}
	metrics.MovieCount.Set(float64(count))

	c.JSON(http.StatusOK, gin.H{
		"movies":   movies,
		"total":    count,
		"has_more": hasMore,
	})
}

// Get handles GET /api/v1/movies/:id.
func (h *MovieHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "id must be a positive integer")

		return
	}

	movie, err := h.repo.GetMovie(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrMovieNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "movie not found")

			return
		}

		h.log.WithError(err).Error("getting movie")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, movie)
}
