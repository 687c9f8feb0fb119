package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/dbpool"
	"github.com/cinelake/cinelake/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Importer    ImportService
	Batches     BatchSource // nil when no batch bucket is configured
	Ask         AskService
	Predictor   PredictService
	Movies      MovieRepository
	Genres      GenreRepository
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 50 << 20 // 50 MB, batch payloads arrive inline too
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Predictor, log, deps.Version)
	imports := NewImportHandler(deps.Importer, deps.Batches, log)
	ask := NewAskHandler(deps.Ask, log)
	predict := NewPredictHandler(deps.Predictor, log)
	movies := NewMovieHandler(deps.Movies, log)
	genres := NewGenreHandler(deps.Genres, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	api.POST("/imports", imports.Create)

	api.POST("/ask", ask.Ask)
	api.POST("/predict", predict.Predict)

	api.GET("/movies", movies.List)
	api.GET("/movies/:id", movies.Get)
	api.GET("/genres", genres.List)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
