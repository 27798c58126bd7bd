package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"healthart-backend/internal/art"
	"healthart-backend/internal/auth"
	"healthart-backend/internal/services/health"
	"healthart-backend/internal/sessions"
	"healthart-backend/internal/shared/config"
	"healthart-backend/internal/shared/metrics"
	"healthart-backend/internal/shared/server/middleware"
	"healthart-backend/internal/shared/server/respond"
	"healthart-backend/internal/web"
)

const artRateGroup = "ART"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config     config.Config
	Health     *health.Service
	Metrics    *metrics.Metrics
	WhoopAuth  *auth.WhoopService
	ArtHandler *art.Handler
	WebHandler *web.Handler
	Sessions   *sessions.Store
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.SessionAuth(deps.Sessions),
		middleware.RateLimit(artRateLimit(deps.Config)),
	)

	deps.WebHandler.RegisterRoutes(r)
	deps.WhoopAuth.RegisterRoutes(r)
	r.GET("/metrics", deps.Metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	registerMeRoutes(api)
	deps.ArtHandler.RegisterRoutes(api)

	return r
}

// artRateLimit throttles the generation endpoint only; pages and health
// checks stay unlimited.
func artRateLimit(cfg config.Config) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			artRateGroup: {
				Rate:  rate.Limit(float64(cfg.ArtRatePerMinute) / 60.0),
				Burst: cfg.ArtRateBurst,
			},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.URL.Path == "/api/v1/art" && c.Request.Method == http.MethodPost {
				return artRateGroup
			}
			return ""
		},
		DefaultGroup: "NONE",
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3030"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
