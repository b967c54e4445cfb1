package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentnet-backend/application/services"
	"talentnet-backend/domain/content"
	"talentnet-backend/domain/feed"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	"talentnet-backend/domain/traversal"
)

type stubIdentity struct{}

func (stubIdentity) GetUserAttributes(ctx context.Context, userID graph.UserID) (*profile.AttributeRecord, error) {
	return &profile.AttributeRecord{
		SchemaVersion: profile.CurrentSchemaVersion,
		UserID:        userID.String(),
	}, nil
}

// deadlineCapture records the context deadline the content port sees
type deadlineCapture struct {
	deadline time.Time
	set      bool
}

func (d *deadlineCapture) GetRecentContent(ctx context.Context, authorIDs []graph.UserID, window time.Duration) ([]content.Item, error) {
	d.deadline, d.set = ctx.Deadline()
	return nil, nil
}

func newFeedRouter(t *testing.T, capture *deadlineCapture, deadline time.Duration) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	store := graph.NewStore()
	require.NoError(t, store.AddEdge("seed", "alice"))

	engine := traversal.NewEngine(store)
	aggregator := services.NewCandidateAggregator(store, capture, services.AggregatorConfig{
		Window:        24 * time.Hour,
		MaxCandidates: 100,
	}, logger)
	svc := services.NewFeedService(store, engine, aggregator, stubIdentity{},
		feed.NewScorer(feed.DefaultScorerConfig()), feed.DefaultSelectorConfig(),
		services.FeedConfig{
			Depth:          2,
			MaxVisited:     1000,
			DefaultLimit:   20,
			MaxLimit:       50,
			ScoringWorkers: 2,
		}, nil, logger)

	router := chi.NewRouter()
	router.Get("/feed/{userID}", NewFeedHandler(svc, deadline, logger).GetFeed)
	return router
}

func TestGetFeedAppliesConfiguredDeadline(t *testing.T) {
	capture := &deadlineCapture{}
	router := newFeedRouter(t, capture, 2*time.Second)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feed/seed", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, capture.set, "feed requests run under a deadline")
	assert.WithinDuration(t, time.Now().Add(2*time.Second), capture.deadline, time.Second)
}

func TestGetFeedDeadlineMsOverrides(t *testing.T) {
	capture := &deadlineCapture{}
	router := newFeedRouter(t, capture, 2*time.Second)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feed/seed?deadlineMs=30000", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, capture.set)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), capture.deadline, time.Second)
}

func TestGetFeedUnboundedWithoutDeadline(t *testing.T) {
	capture := &deadlineCapture{}
	router := newFeedRouter(t, capture, 0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feed/seed", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, capture.set)
}
