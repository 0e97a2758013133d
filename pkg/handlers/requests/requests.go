package requests

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/skillswap/skill-exchange/pkg/api"
	"github.com/skillswap/skill-exchange/pkg/handlers/respond"
	"github.com/skillswap/skill-exchange/pkg/mapping"
	"github.com/skillswap/skill-exchange/pkg/metrics"
	"github.com/skillswap/skill-exchange/pkg/middleware"
	"github.com/skillswap/skill-exchange/pkg/notifications"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// RequestsHandler holds the dependencies for learning-request and bidding
// handlers.
type RequestsHandler struct {
	Store    storage.ApiStore
	Notifier notifications.Notifier
}

// NewRequestsHandler creates a new RequestsHandler.
func NewRequestsHandler(store storage.ApiStore, notifier notifications.Notifier) *RequestsHandler {
	return &RequestsHandler{Store: store, Notifier: notifier}
}

// CreateRequest handles the logic for opening a learning request.
func (h *RequestsHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var newReq api.NewLearningRequest
	if err := json.NewDecoder(r.Body).Decode(&newReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newReq.Skill == "" || newReq.MaxBudget <= 0 || newReq.DurationMinutes <= 0 {
		http.Error(w, "skill, max_budget and duration_minutes are required", http.StatusBadRequest)
		return
	}

	created, err := h.Store.CreateLearningRequest(r.Context(), mapping.ToDomainNewRequest(&newReq, actor))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiRequest(created))
}

// ListRequests handles the logic for listing open learning requests.
func (h *RequestsHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Store.ListOpenRequests(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiReqs := make([]*api.LearningRequest, len(reqs))
	for i := range reqs {
		apiReqs[i] = mapping.ToApiRequest(&reqs[i])
	}

	respond.JSON(w, http.StatusOK, apiReqs)
}

// GetRequestById handles the logic for retrieving a learning request.
func (h *RequestsHandler) GetRequestById(w http.ResponseWriter, r *http.Request, requestId string) {
	req, err := h.Store.GetLearningRequest(r.Context(), requestId)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiRequest(req))
}

// SubmitBid handles the logic for bidding on an open request.
func (h *RequestsHandler) SubmitBid(w http.ResponseWriter, r *http.Request, requestId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var newBid api.NewBid
	if err := json.NewDecoder(r.Body).Decode(&newBid); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newBid.RatePerHour <= 0 || newBid.DurationMinutes <= 0 {
		http.Error(w, "rate_per_hour and duration_minutes are required", http.StatusBadRequest)
		return
	}

	updated, err := h.Store.SubmitBid(r.Context(), requestId, mapping.ToDomainNewBid(&newBid, actor))
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.notify(r, updated.Owner, notifications.Message{
		Type:    notifications.TypeBidUpdate,
		Title:   "New bid received",
		Message: fmt.Sprintf("A tutor bid on your %s request", updated.Skill),
		Data:    map[string]interface{}{"request_id": updated.Id},
	})

	respond.JSON(w, http.StatusCreated, mapping.ToApiRequest(updated))
}

// AcceptBid handles the logic for accepting a bid. On success the escrow is
// reserved and a confirmed session exists.
func (h *RequestsHandler) AcceptBid(w http.ResponseWriter, r *http.Request, requestId, bidId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	session, err := h.Store.AcceptBid(r.Context(), requestId, bidId, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()
	metrics.EscrowMovements.WithLabelValues(metrics.EscrowReserve).Inc()

	h.notify(r, session.Tutor, notifications.Message{
		Type:    notifications.TypeBidUpdate,
		Title:   "Bid accepted",
		Message: fmt.Sprintf("Your bid was accepted; session %s is confirmed", session.Id),
		Data:    map[string]interface{}{"session_id": session.Id},
	})

	respond.JSON(w, http.StatusCreated, mapping.ToApiSession(session))
}

// RejectBid handles the logic for the owner rejecting one bid.
func (h *RequestsHandler) RejectBid(w http.ResponseWriter, r *http.Request, requestId, bidId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	if err := h.Store.RejectBid(r.Context(), requestId, bidId, actor); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// WithdrawBid handles the logic for a tutor withdrawing their own bid.
func (h *RequestsHandler) WithdrawBid(w http.ResponseWriter, r *http.Request, requestId, bidId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	if err := h.Store.WithdrawBid(r.Context(), requestId, bidId, actor); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// notify sends a fire-and-forget notification. Failures are logged, never
// surfaced to the caller.
func (h *RequestsHandler) notify(r *http.Request, walletAddress string, message notifications.Message) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Notify(r.Context(), walletAddress, message); err != nil {
		slog.Error("failed to deliver notification", "wallet_address", walletAddress, "type", string(message.Type), "error", err)
	}
}
