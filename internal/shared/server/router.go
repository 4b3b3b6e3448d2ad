package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/files"
	"filemanager-backend/internal/images"
	"filemanager-backend/internal/shared/config"
	"filemanager-backend/internal/shared/metrics"
	"filemanager-backend/internal/shared/server/middleware"
	"filemanager-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers mounted on the engine.
type RouterDeps struct {
	Config       config.Config
	FileHandler  *files.Handler
	ImageHandler *images.Handler
	// Limiter is shared across groups; nil builds a fresh one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	cfg := deps.Config

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	limiter := middleware.RateLimit(middleware.RateLimitConfig{
		Rules:    rateRules(cfg.RateLimit),
		GroupFor: middleware.UploadGroup,
		Limiter:  deps.Limiter,
	})

	if deps.FileHandler != nil {
		owned := api.Group("", middleware.Identity(), limiter)
		deps.FileHandler.RegisterRoutes(owned)
	}
	if deps.ImageHandler != nil {
		deps.ImageHandler.RegisterRoutes(api.Group("", limiter))
	}

	return r
}

func rateRules(cfg config.RateLimits) map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		middleware.RateGroupDefault: {Rate: cfg.DefaultRPS, Burst: cfg.DefaultBurst},
		middleware.RateGroupUpload:  {Rate: cfg.UploadRPS, Burst: cfg.UploadBurst},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
