package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopfrontdev/shopfront-backend/api/controllers"
	"github.com/shopfrontdev/shopfront-backend/api/controllers/graphql"
	"github.com/shopfrontdev/shopfront-backend/api/middleware"
	"github.com/shopfrontdev/shopfront-backend/pkg/config"
	"github.com/shopfrontdev/shopfront-backend/pkg/db"
	"github.com/shopfrontdev/shopfront-backend/pkg/logger"
	"github.com/shopfrontdev/shopfront-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: health probes, the metrics scrape
// endpoint, and the storefront's /graphql dispatch.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	gql *graphql.Handler,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Method(http.MethodPost, "/graphql", gql)

	return r
}
