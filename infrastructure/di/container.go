package di

import (
	"talentnet-backend/application/ports"
	"talentnet-backend/application/services"
	"talentnet-backend/domain/graph"
	"talentnet-backend/infrastructure/config"
	"talentnet-backend/pkg/auth"
	"talentnet-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Store          *graph.Store
	EdgeRepo       ports.EdgeRepository
	Cache          ports.Cache
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	TokenValidator *auth.TokenValidator
	RateLimiter    *auth.RateLimiter
	Network        *services.NetworkService
	Traversal      *services.TraversalService
	Recommender    *services.RecommendationService
	Feed           *services.FeedService
}
