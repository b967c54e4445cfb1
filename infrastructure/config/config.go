package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	EdgeTableName    string
	ProfileTableName string
	ContentTableName string
	EventBusName     string

	// Traversal bounds
	MaxDepth        int
	MaxVisited      int
	MaxHops         int
	NeighborhoodTTL time.Duration

	// Feed generation
	FeedDepth          int
	FeedDefaultLimit   int
	FeedMaxLimit       int
	FeedScoringWorkers int
	AggregationWindow  time.Duration
	MaxCandidates      int

	// Relevance weights; must sum to 1
	ConnectionWeight float64
	SimilarityWeight float64
	RecencyWeight    float64
	EngagementWeight float64

	// Scoring normalization
	RecencyHorizon        time.Duration
	EngagementThreshold   float64
	TopConnectionBonus    float64
	InteractionSaturation int

	// Diversity caps
	AuthorCap int
	TypeCap   int // 0 derives ceil(limit/3) at selection time

	// Recommendation weights; must sum to 1
	RecMutualWeight       float64
	RecSimilarityWeight   float64
	RecInteractionWeight  float64
	RecDefaultLimit       int
	RecMaxLimit           int
	RecInteractionHorizon time.Duration

	// Request deadlines
	FeedDeadline time.Duration

	// Rate limiting (requests per second per caller, with burst)
	RateLimit float64
	RateBurst int

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:    getEnv("SERVER_ADDRESS", ":8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		AWSRegion:        getEnv("AWS_REGION", "us-west-2"),
		EdgeTableName:    getEnv("EDGE_TABLE_NAME", "talentnet-edges"),
		ProfileTableName: getEnv("PROFILE_TABLE_NAME", "talentnet-profiles"),
		ContentTableName: getEnv("CONTENT_TABLE_NAME", "talentnet-content"),
		EventBusName:     getEnv("EVENT_BUS_NAME", "talentnet-events"),

		MaxDepth:        getEnvInt("TRAVERSAL_MAX_DEPTH", 3),
		MaxVisited:      getEnvInt("TRAVERSAL_MAX_VISITED", 10000),
		MaxHops:         getEnvInt("TRAVERSAL_MAX_HOPS", 6),
		NeighborhoodTTL: getEnvDuration("NEIGHBORHOOD_TTL", 60*time.Second),

		FeedDepth:          getEnvInt("FEED_DEPTH", 2),
		FeedDefaultLimit:   getEnvInt("FEED_DEFAULT_LIMIT", 20),
		FeedMaxLimit:       getEnvInt("FEED_MAX_LIMIT", 100),
		FeedScoringWorkers: getEnvInt("FEED_SCORING_WORKERS", 8),
		AggregationWindow:  getEnvDuration("AGGREGATION_WINDOW", 14*24*time.Hour),
		MaxCandidates:      getEnvInt("MAX_CANDIDATES", 200),

		ConnectionWeight: getEnvFloat("WEIGHT_CONNECTION", 0.3),
		SimilarityWeight: getEnvFloat("WEIGHT_SIMILARITY", 0.4),
		RecencyWeight:    getEnvFloat("WEIGHT_RECENCY", 0.2),
		EngagementWeight: getEnvFloat("WEIGHT_ENGAGEMENT", 0.1),

		RecencyHorizon:        getEnvDuration("RECENCY_HORIZON", 7*24*time.Hour),
		EngagementThreshold:   getEnvFloat("ENGAGEMENT_THRESHOLD", 100),
		TopConnectionBonus:    getEnvFloat("TOP_CONNECTION_BONUS", 0.25),
		InteractionSaturation: getEnvInt("INTERACTION_SATURATION", 50),

		AuthorCap: getEnvInt("FEED_AUTHOR_CAP", 3),
		TypeCap:   getEnvInt("FEED_TYPE_CAP", 0),

		RecMutualWeight:       getEnvFloat("REC_WEIGHT_MUTUAL", 0.5),
		RecSimilarityWeight:   getEnvFloat("REC_WEIGHT_SIMILARITY", 0.35),
		RecInteractionWeight:  getEnvFloat("REC_WEIGHT_INTERACTION", 0.15),
		RecDefaultLimit:       getEnvInt("REC_DEFAULT_LIMIT", 10),
		RecMaxLimit:           getEnvInt("REC_MAX_LIMIT", 50),
		RecInteractionHorizon: getEnvDuration("REC_INTERACTION_HORIZON", 30*24*time.Hour),

		FeedDeadline: getEnvDuration("FEED_DEADLINE", 2*time.Second),

		RateLimit: getEnvFloat("RATE_LIMIT_RPS", 10),
		RateBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "talentnet-backend"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present and coherent
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.EdgeTableName == "" {
			return fmt.Errorf("EDGE_TABLE_NAME is required")
		}
	}

	if sum := c.ConnectionWeight + c.SimilarityWeight + c.RecencyWeight + c.EngagementWeight; !nearOne(sum) {
		return fmt.Errorf("relevance weights must sum to 1, got %.3f", sum)
	}
	if sum := c.RecMutualWeight + c.RecSimilarityWeight + c.RecInteractionWeight; !nearOne(sum) {
		return fmt.Errorf("recommendation weights must sum to 1, got %.3f", sum)
	}
	if c.MaxVisited < 1 || c.MaxDepth < 1 || c.MaxHops < 1 {
		return fmt.Errorf("traversal bounds must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func nearOne(v float64) bool {
	return v > 0.999 && v < 1.001
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
