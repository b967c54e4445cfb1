//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"talentnet-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideCache,
	ProvideGraphStore,
	ProvideTraversalEngine,
	ProvideEdgeRepository,
	ProvideIdentityService,
	ProvideContentService,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideTokenValidator,
	ProvideRateLimiter,
	ProvideScorer,
	ProvideSelectorConfig,
	ProvideSimilarity,
	ProvideWeightStore,
	ProvideAggregator,
	ProvideNetworkService,
	ProvideTraversalService,
	ProvideRecommendationService,
	ProvideFeedService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
