package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postdex/internal/metrics"
)

// BaseURL prefixes every post API route.
const BaseURL = "/api/v1"

// RouterConfig configures NewRouter.
type RouterConfig struct {
	CORSAllowedOrigins []string
}

// NewRouter assembles the middleware chain, the API routes and the
// operational endpoints (/health, /metrics).
func NewRouter(s *Server, logger *zap.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(metrics.Middleware())
	r.Use(jsonRecoverer)

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	Mount(r, BaseURL, s)
	return r
}
