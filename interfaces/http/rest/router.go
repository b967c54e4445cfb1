package rest

import (
	"net/http"

	"talentnet-backend/infrastructure/config"
	"talentnet-backend/interfaces/http/rest/handlers"
	"talentnet-backend/interfaces/http/rest/middleware"
	"talentnet-backend/pkg/auth"
	"talentnet-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	network     *handlers.NetworkHandler
	feed        *handlers.FeedHandler
	recommender *handlers.RecommendationHandler
	validator   *auth.TokenValidator
	limiter     *auth.RateLimiter
	tracer      *observability.Tracer
	cfg         *config.Config
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	network *handlers.NetworkHandler,
	feed *handlers.FeedHandler,
	recommender *handlers.RecommendationHandler,
	validator *auth.TokenValidator,
	limiter *auth.RateLimiter,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		network:     network,
		feed:        feed,
		recommender: recommender,
		validator:   validator,
		limiter:     limiter,
		tracer:      tracer,
		cfg:         cfg,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Tracing(rt.tracer))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.talentnet.io"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))
		r.Use(middleware.RateLimit(rt.limiter))

		r.Route("/network", func(r chi.Router) {
			r.Post("/edges", rt.network.RecordEdgeChange)
			r.Delete("/edges", rt.network.RemoveEdge)
			r.Post("/interactions", rt.network.RecordInteraction)
			r.Post("/feedback", rt.recommender.RecordFeedback)
			r.Get("/path", rt.network.GetPath)

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/neighborhood", rt.network.GetNeighborhood)
				r.Get("/stats", rt.network.GetStats)
				r.Get("/recommendations", rt.recommender.GetRecommendations)
				r.Put("/top-connections", rt.network.SetTopConnections)
			})
		})

		r.Get("/feed/{userID}", rt.feed.GetFeed)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
