package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/history"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

const (
	rateGroupWrite = "WRITE"
	rateGroupRead  = "READ"
)

// Deps are the handlers mounted on the router.
type Deps struct {
	Analyses *analyses.Handler
	History  *history.Handler
	Health   *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Identity(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		st := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})

	limited := api.Group("", middleware.RateLimit(rateLimitConfig(cfg)))
	if deps.Analyses != nil {
		deps.Analyses.RegisterRoutes(limited)
	}
	if deps.History != nil {
		deps.History.RegisterRoutes(limited)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})
	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: rateGroupWrite,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet {
				return rateGroupRead
			}
			return rateGroupWrite
		},
		Rules: map[string]middleware.RateLimitRule{
			rateGroupWrite: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			rateGroupRead:  {Rate: cfg.RateLimitRPS * 5, Burst: cfg.RateLimitBurst * 2},
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
