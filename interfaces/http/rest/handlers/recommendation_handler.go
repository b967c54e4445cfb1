package handlers

import (
	"net/http"
	"time"

	"talentnet-backend/application/services"
	"talentnet-backend/domain/graph"
	"talentnet-backend/pkg/common"
	"talentnet-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecommendationHandler serves connection recommendations and feedback
type RecommendationHandler struct {
	recommender *services.RecommendationService
	deadline    time.Duration
	logger      *zap.Logger
}

// NewRecommendationHandler creates a recommendation handler. deadline
// bounds recommendation generation unless overridden with deadlineMs.
func NewRecommendationHandler(recommender *services.RecommendationService, deadline time.Duration, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		deadline:    deadline,
		logger:      logger,
	}
}

// GetRecommendations handles GET /network/{userID}/recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := graph.UserID(chi.URLParam(r, "userID"))
	limit := queryInt(r, "limit", 0)

	ctx, cancel := requestContext(r, h.deadline)
	defer cancel()

	results, err := h.recommender.Recommend(ctx, userID, limit)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, results)
}

// FeedbackRequest is the payload for POST /network/feedback
type FeedbackRequest struct {
	UserID      string `json:"user_id" validate:"required,min=1,max=64"`
	CandidateID string `json:"candidate_id" validate:"required,min=1,max=64"`
	Accepted    bool   `json:"accepted"`
}

// RecordFeedback handles POST /network/feedback
func (h *RecommendationHandler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	err := h.recommender.RecordFeedback(
		r.Context(),
		graph.UserID(req.UserID),
		graph.UserID(req.CandidateID),
		req.Accepted,
	)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"applied": true})
}
