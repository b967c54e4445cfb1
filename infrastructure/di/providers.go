package di

import (
	"context"
	"fmt"

	"talentnet-backend/application/ports"
	"talentnet-backend/application/services"
	"talentnet-backend/domain/feed"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	"talentnet-backend/domain/recommend"
	"talentnet-backend/domain/traversal"
	"talentnet-backend/infrastructure/cache"
	"talentnet-backend/infrastructure/config"
	"talentnet-backend/infrastructure/messaging/eventbridge"
	dynamopersist "talentnet-backend/infrastructure/persistence/dynamodb"
	"talentnet-backend/pkg/auth"
	"talentnet-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCache creates the in-memory result cache
func ProvideCache() ports.Cache {
	return cache.NewInMemoryCache()
}

// ProvideGraphStore creates the in-memory graph store with its mutation
// hook wired to the cache: any edge change drops every cached result
// indexed to either endpoint before the mutation returns.
func ProvideGraphStore(resultCache ports.Cache) *graph.Store {
	store := graph.NewStore()
	store.SetMutationHook(func(u, v graph.UserID) {
		ctx := context.Background()
		resultCache.InvalidateUser(ctx, u)
		resultCache.InvalidateUser(ctx, v)
	})
	return store
}

// ProvideTraversalEngine creates the traversal engine
func ProvideTraversalEngine(store *graph.Store) *traversal.Engine {
	return traversal.NewEngine(store)
}

// ProvideEdgeRepository creates the edge journal
func ProvideEdgeRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.EdgeRepository {
	return dynamopersist.NewEdgeRepository(client, cfg.EdgeTableName, logger)
}

// ProvideIdentityService creates the identity collaborator adapter
func ProvideIdentityService(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityService {
	return dynamopersist.NewProfileRepository(client, cfg.ProfileTableName, logger)
}

// ProvideContentService creates the content collaborator adapter
func ProvideContentService(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ContentService {
	return dynamopersist.NewContentRepository(client, cfg.ContentTableName, logger)
}

// ProvideEventPublisher creates the edge-change event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics emitter; disabled metrics emit nothing
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(nil, "", logger)
	}
	namespace := fmt.Sprintf("TalentNet/%s", cfg.Environment)
	return observability.NewMetrics(client, namespace, logger)
}

// ProvideTracer creates the tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("talentnet-backend", cfg.EnableTracing)
}

// ProvideTokenValidator creates the JWT validator
func ProvideTokenValidator(cfg *config.Config) *auth.TokenValidator {
	return auth.NewTokenValidator(cfg.JWTSecret, cfg.JWTIssuer)
}

// ProvideRateLimiter creates the per-caller rate limiter
func ProvideRateLimiter(cfg *config.Config) *auth.RateLimiter {
	return auth.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
}

// ProvideScorer creates the relevance scorer from configured weights
func ProvideScorer(cfg *config.Config) *feed.Scorer {
	return feed.NewScorer(feed.ScorerConfig{
		ConnectionWeight:      cfg.ConnectionWeight,
		SimilarityWeight:      cfg.SimilarityWeight,
		RecencyWeight:         cfg.RecencyWeight,
		EngagementWeight:      cfg.EngagementWeight,
		RecencyHorizon:        cfg.RecencyHorizon,
		EngagementThreshold:   cfg.EngagementThreshold,
		TopConnectionBonus:    cfg.TopConnectionBonus,
		InteractionSaturation: cfg.InteractionSaturation,
	})
}

// ProvideSelectorConfig creates the diversity selector configuration
func ProvideSelectorConfig(cfg *config.Config) feed.SelectorConfig {
	return feed.SelectorConfig{
		AuthorCap: cfg.AuthorCap,
		TypeCap:   cfg.TypeCap,
	}
}

// ProvideSimilarity creates the attribute similarity measure
func ProvideSimilarity() profile.Similarity {
	return profile.NewJaccardSimilarity()
}

// ProvideWeightStore creates the per-user adaptive weight store
func ProvideWeightStore(cfg *config.Config) *recommend.WeightStore {
	return recommend.NewWeightStore(recommend.Weights{
		Mutual:            cfg.RecMutualWeight,
		Similarity:        cfg.RecSimilarityWeight,
		RecentInteraction: cfg.RecInteractionWeight,
	})
}

// ProvideAggregator creates the candidate aggregator
func ProvideAggregator(store *graph.Store, contentSvc ports.ContentService, cfg *config.Config, logger *zap.Logger) *services.CandidateAggregator {
	return services.NewCandidateAggregator(store, contentSvc, services.AggregatorConfig{
		Window:        cfg.AggregationWindow,
		MaxCandidates: cfg.MaxCandidates,
	}, logger)
}

// ProvideNetworkService creates the network service
func ProvideNetworkService(
	store *graph.Store,
	engine *traversal.Engine,
	edgeRepo ports.EdgeRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.NetworkService {
	return services.NewNetworkService(store, engine, edgeRepo, publisher, metrics, logger)
}

// ProvideTraversalService creates the traversal service
func ProvideTraversalService(engine *traversal.Engine, resultCache ports.Cache, cfg *config.Config, logger *zap.Logger) *services.TraversalService {
	return services.NewTraversalService(engine, resultCache, services.TraversalConfig{
		MaxDepth:        cfg.MaxDepth,
		MaxVisited:      cfg.MaxVisited,
		MaxHops:         cfg.MaxHops,
		NeighborhoodTTL: cfg.NeighborhoodTTL,
	}, logger)
}

// ProvideRecommendationService creates the recommendation service
func ProvideRecommendationService(
	store *graph.Store,
	engine *traversal.Engine,
	identity ports.IdentityService,
	similarity profile.Similarity,
	weights *recommend.WeightStore,
	cfg *config.Config,
	logger *zap.Logger,
) *services.RecommendationService {
	return services.NewRecommendationService(store, engine, identity, similarity, weights, services.RecommendationConfig{
		MaxVisited:         cfg.MaxVisited,
		DefaultLimit:       cfg.RecDefaultLimit,
		MaxLimit:           cfg.RecMaxLimit,
		InteractionHorizon: cfg.RecInteractionHorizon,
	}, logger)
}

// ProvideFeedService creates the feed service
func ProvideFeedService(
	store *graph.Store,
	engine *traversal.Engine,
	aggregator *services.CandidateAggregator,
	identity ports.IdentityService,
	scorer *feed.Scorer,
	selectorCfg feed.SelectorConfig,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *services.FeedService {
	return services.NewFeedService(store, engine, aggregator, identity, scorer, selectorCfg, services.FeedConfig{
		Depth:          cfg.FeedDepth,
		MaxVisited:     cfg.MaxVisited,
		DefaultLimit:   cfg.FeedDefaultLimit,
		MaxLimit:       cfg.FeedMaxLimit,
		ScoringWorkers: cfg.FeedScoringWorkers,
	}, metrics, logger)
}
