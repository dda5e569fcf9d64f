package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finrecon-backend/internal/audit"
	"finrecon-backend/internal/auth"
	"finrecon-backend/internal/documents"
	"finrecon-backend/internal/reconciliations"
	"finrecon-backend/internal/shared/config"
	"finrecon-backend/internal/shared/metrics"
	"finrecon-backend/internal/shared/server/middleware"
	"finrecon-backend/internal/shared/server/respond"
	"finrecon-backend/internal/stats"
	"finrecon-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config                config.Config
	LocalAuth             *auth.LocalService
	GoogleAuth            *auth.GoogleService
	GitHubAuth            *auth.GitHubService
	UserHandler           *users.Handler
	DocumentHandler       *documents.Handler
	ReconciliationHandler *reconciliations.Handler
	AuditHandler          *audit.Handler
	StatsHandler          *stats.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(processingRateLimit()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.LocalAuth != nil {
		deps.LocalAuth.RegisterRoutes(api)
		authed := api.Group("/auth")
		deps.LocalAuth.RegisterAuthedRoutes(authed)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.GitHubAuth != nil {
		deps.GitHubAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ReconciliationHandler != nil {
		deps.ReconciliationHandler.RegisterRoutes(api)
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.RegisterRoutes(api)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterRoutes(api)
	}
	if cfg.Env == "dev" {
		api.GET("/metrics", metrics.Handler())
	}

	return r
}

// processingRateLimit throttles the routes that call the extraction API.
func processingRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"PROCESS": {Rate: 2, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			switch c.FullPath() {
			case "/api/v1/documents", "/api/v1/reconciliations":
				return "PROCESS"
			}
			return ""
		},
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
