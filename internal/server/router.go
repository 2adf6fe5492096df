package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resumind-backend/internal/auth"
	"resumind-backend/internal/config"
	"resumind-backend/internal/resumes"
	"resumind-backend/internal/shared/metrics"
	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, resumeHandler *resumes.Handler, authSvc *googleauth.GoogleService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.Auth())
	authSvc.RegisterRoutes(api)
	resumeHandler.RegisterRoutes(api)

	return r
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
