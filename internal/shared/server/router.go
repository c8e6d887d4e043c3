package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitches"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/services/health"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/config"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/metrics"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server/middleware"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server/respond"
)

const generateRateGroup = "GENERATE"

// RouterDeps are the handlers mounted by NewRouter.
type RouterDeps struct {
	Config       config.Config
	PitchHandler *pitches.Handler
	Health       *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	if deps.PitchHandler != nil {
		deps.PitchHandler.RegisterRoutes(api, generateLimiter(deps.Config))
	}

	return r
}

func generateLimiter(cfg config.Config) gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: generateRateGroup,
		Rules: map[string]middleware.RateLimitRule{
			generateRateGroup: {Rate: cfg.GenerateRateLimit, Burst: cfg.GenerateRateBurst},
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
