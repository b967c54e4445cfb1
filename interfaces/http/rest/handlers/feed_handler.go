package handlers

import (
	"net/http"
	"time"

	"talentnet-backend/application/services"
	"talentnet-backend/domain/graph"
	"talentnet-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FeedHandler serves the personalized feed
type FeedHandler struct {
	feed     *services.FeedService
	deadline time.Duration
	logger   *zap.Logger
}

// NewFeedHandler creates a feed handler. deadline bounds every feed request
// unless the caller overrides it with deadlineMs.
func NewFeedHandler(feed *services.FeedService, deadline time.Duration, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feed:     feed,
		deadline: deadline,
		logger:   logger,
	}
}

// GetFeed handles GET /feed/{userID}
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID := graph.UserID(chi.URLParam(r, "userID"))
	limit := queryInt(r, "limit", 0)

	ctx, cancel := requestContext(r, h.deadline)
	defer cancel()

	result, err := h.feed.GenerateFeed(ctx, userID, limit)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
