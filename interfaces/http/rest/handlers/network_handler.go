package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"talentnet-backend/application/services"
	"talentnet-backend/domain/graph"
	"talentnet-backend/pkg/common"
	"talentnet-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

// NetworkHandler serves edge mutations and network queries
type NetworkHandler struct {
	network   *services.NetworkService
	traversal *services.TraversalService
	logger    *zap.Logger
}

// NewNetworkHandler creates a network handler
func NewNetworkHandler(network *services.NetworkService, traversal *services.TraversalService, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{
		network:   network,
		traversal: traversal,
		logger:    logger,
	}
}

// EdgeChangeRequest is the payload for POST /network/edges
type EdgeChangeRequest struct {
	UserA          string `json:"user_a" validate:"required,min=1,max=64"`
	UserB          string `json:"user_b" validate:"required,min=1,max=64"`
	Status         string `json:"status" validate:"required,oneof=PENDING ACCEPTED DECLINED BLOCKED"`
	ConnectionType string `json:"connection_type" validate:"omitempty,max=32"`
}

// RecordEdgeChange handles POST /network/edges
func (h *NetworkHandler) RecordEdgeChange(w http.ResponseWriter, r *http.Request) {
	var req EdgeChangeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	err := h.network.RecordEdgeChange(
		r.Context(),
		graph.UserID(req.UserA),
		graph.UserID(req.UserB),
		graph.EdgeStatus(req.Status),
		graph.ConnectionType(req.ConnectionType),
	)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"user_a": req.UserA,
		"user_b": req.UserB,
		"status": req.Status,
	})
}

// PairRequest identifies an unordered pair of users
type PairRequest struct {
	UserA string `json:"user_a" validate:"required,min=1,max=64"`
	UserB string `json:"user_b" validate:"required,min=1,max=64"`
}

// RemoveEdge handles DELETE /network/edges
func (h *NetworkHandler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	if err := h.network.RemoveEdge(r.Context(), graph.UserID(req.UserA), graph.UserID(req.UserB)); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// RecordInteraction handles POST /network/interactions
func (h *NetworkHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	if err := h.network.RecordInteraction(r.Context(), graph.UserID(req.UserA), graph.UserID(req.UserB)); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"recorded": true})
}

// TopConnectionsRequest is the payload for PUT /network/{userID}/top-connections
type TopConnectionsRequest struct {
	Peers []string `json:"peers" validate:"required,max=8,dive,min=1,max=64"`
}

// SetTopConnections handles PUT /network/{userID}/top-connections
func (h *NetworkHandler) SetTopConnections(w http.ResponseWriter, r *http.Request) {
	userID := graph.UserID(chi.URLParam(r, "userID"))

	var req TopConnectionsRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	peers := make([]graph.UserID, len(req.Peers))
	for i, p := range req.Peers {
		peers[i] = graph.UserID(p)
	}
	if err := h.network.SetTopConnections(r.Context(), userID, peers); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]int{"count": len(peers)})
}

// GetStats handles GET /network/{userID}/stats
func (h *NetworkHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := graph.UserID(chi.URLParam(r, "userID"))

	stats, err := h.network.GetNetworkStats(r.Context(), userID, 0)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, stats)
}

// GetNeighborhood handles GET /network/{userID}/neighborhood. A positive
// deadlineMs bounds the expansion; exceeding it yields a partial result,
// not an error.
func (h *NetworkHandler) GetNeighborhood(w http.ResponseWriter, r *http.Request) {
	userID := graph.UserID(chi.URLParam(r, "userID"))
	depth := queryInt(r, "depth", 1)

	ctx, cancel := requestContext(r, 0)
	defer cancel()

	nbhd, err := h.traversal.GetNeighborhood(ctx, userID, depth)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, nbhd)
}

// GetPath handles GET /network/path
func (h *NetworkHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	from := graph.UserID(r.URL.Query().Get("from"))
	to := graph.UserID(r.URL.Query().Get("to"))
	maxHops := queryInt(r, "maxHops", 0)

	result, err := h.traversal.GetShortestPath(r.Context(), from, to, maxHops)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// requestContext bounds the request context. An explicit deadlineMs query
// parameter wins; otherwise def applies when positive; otherwise the
// request context passes through unbounded.
func requestContext(r *http.Request, def time.Duration) (context.Context, context.CancelFunc) {
	deadline := def
	if ms := queryInt(r, "deadlineMs", 0); ms > 0 {
		deadline = time.Duration(ms) * time.Millisecond
	}
	if deadline <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), deadline)
}

// queryInt reads an integer query parameter, falling back on def
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
