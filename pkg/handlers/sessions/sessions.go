package sessions

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

// SessionsHandler holds the dependencies for session lifecycle handlers.
type SessionsHandler struct {
	Store    storage.ApiStore
	Notifier notifications.Notifier
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(store storage.ApiStore, notifier notifications.Notifier) *SessionsHandler {
	return &SessionsHandler{Store: store, Notifier: notifier}
}

// BookSession handles the logic for booking a session directly with a
// tutor. The acting wallet is the learner and pays the escrow.
func (h *SessionsHandler) BookSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var newSession api.NewSession
	if err := json.NewDecoder(r.Body).Decode(&newSession); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newSession.Tutor == "" || newSession.Skill == "" || newSession.RatePerHour <= 0 || newSession.DurationMinutes <= 0 {
		http.Error(w, "tutor, skill, rate_per_hour and duration_minutes are required", http.StatusBadRequest)
		return
	}
	if newSession.Tutor == actor {
		http.Error(w, "cannot book a session with yourself", http.StatusBadRequest)
		return
	}

	session, err := h.Store.BookSession(r.Context(), mapping.ToDomainNewSession(&newSession, actor))
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()
	metrics.EscrowMovements.WithLabelValues(metrics.EscrowReserve).Inc()

	h.notify(r, session.Tutor, notifications.Message{
		Type:    notifications.TypeSessionUpdate,
		Title:   "New session request",
		Message: fmt.Sprintf("A learner requested a %s session", session.Skill),
		Data:    map[string]interface{}{"session_id": session.Id},
	})

	respond.JSON(w, http.StatusCreated, mapping.ToApiSession(session))
}

// GetSessionById handles the logic for retrieving a session.
func (h *SessionsHandler) GetSessionById(w http.ResponseWriter, r *http.Request, sessionId string) {
	session, err := h.Store.GetSession(r.Context(), sessionId)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// ListSessionsByUser handles the logic for listing a user's sessions.
func (h *SessionsHandler) ListSessionsByUser(w http.ResponseWriter, r *http.Request, walletAddress string) {
	sessions, err := h.Store.ListSessionsByUser(r.Context(), walletAddress)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiSessions := make([]*api.Session, len(sessions))
	for i := range sessions {
		apiSessions[i] = mapping.ToApiSession(&sessions[i])
	}

	respond.JSON(w, http.StatusOK, apiSessions)
}

// ApproveSession handles the tutor approving a requested session.
func (h *SessionsHandler) ApproveSession(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var body api.ApproveSession
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
	}

	session, err := h.Store.ApproveSession(r.Context(), sessionId, actor, body.MeetingLink)
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()

	h.notify(r, session.Learner, notifications.Message{
		Type:    notifications.TypeSessionUpdate,
		Title:   "Session confirmed",
		Message: fmt.Sprintf("Your %s session was confirmed by the tutor", session.Skill),
		Data:    map[string]interface{}{"session_id": session.Id},
	})

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// RejectSession handles the tutor rejecting a requested session. The escrow
// is refunded to the learner.
func (h *SessionsHandler) RejectSession(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var body api.RejectSession
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.Reason == "" {
		http.Error(w, "reason is required", http.StatusBadRequest)
		return
	}

	session, err := h.Store.RejectSession(r.Context(), sessionId, actor, body.Reason)
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()
	metrics.EscrowMovements.WithLabelValues(metrics.EscrowRefund).Inc()

	h.notify(r, session.Learner, notifications.Message{
		Type:    notifications.TypeSessionUpdate,
		Title:   "Session rejected",
		Message: fmt.Sprintf("Your %s session was rejected: %s", session.Skill, session.RejectReason),
		Data:    map[string]interface{}{"session_id": session.Id},
	})

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// CancelSession handles either participant canceling a session. The escrow
// is always refunded to the learner.
func (h *SessionsHandler) CancelSession(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	session, err := h.Store.CancelSession(r.Context(), sessionId, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()
	metrics.EscrowMovements.WithLabelValues(metrics.EscrowRefund).Inc()

	counterparty := session.Tutor
	if actor == session.Tutor {
		counterparty = session.Learner
	}
	h.notify(r, counterparty, notifications.Message{
		Type:    notifications.TypeSessionUpdate,
		Title:   "Session canceled",
		Message: fmt.Sprintf("The %s session was canceled", session.Skill),
		Data:    map[string]interface{}{"session_id": session.Id},
	})

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// StartSession handles the tutor starting a confirmed session.
func (h *SessionsHandler) StartSession(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	session, err := h.Store.StartSession(r.Context(), sessionId, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()

	h.notify(r, session.Learner, notifications.Message{
		Type:    notifications.TypeSessionUpdate,
		Title:   "Session started",
		Message: fmt.Sprintf("Your %s session is now in progress", session.Skill),
		Data:    map[string]interface{}{"session_id": session.Id},
	})

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// CompleteSession handles the tutor completing an in-progress session. On
// success the escrow is released to the tutor and a pending certificate
// exists for the learner.
func (h *SessionsHandler) CompleteSession(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	session, cert, err := h.Store.CompleteSession(r.Context(), sessionId, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}

	metrics.SessionTransitions.WithLabelValues(string(session.Status)).Inc()
	metrics.EscrowMovements.WithLabelValues(metrics.EscrowRelease).Inc()

	h.notify(r, session.Learner, notifications.Message{
		Type:    notifications.TypeCertificateUpdate,
		Title:   "Session completed",
		Message: fmt.Sprintf("Your %s certificate is being minted", session.Skill),
		Data:    map[string]interface{}{"session_id": session.Id, "certificate_id": cert.Id},
	})

	respond.JSON(w, http.StatusOK, completionResponse{
		Session:     mapping.ToApiSession(session),
		Certificate: mapping.ToApiCertificate(cert),
	})
}

// completionResponse pairs the completed session with its new certificate.
type completionResponse struct {
	Session     *api.Session     `json:"session"`
	Certificate *api.Certificate `json:"certificate"`
}

// UpdateMilestone handles a participant toggling one progress milestone.
func (h *SessionsHandler) UpdateMilestone(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var body api.MilestoneUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.MilestoneId == "" {
		http.Error(w, "milestone_id is required", http.StatusBadRequest)
		return
	}

	session, err := h.Store.UpdateMilestone(r.Context(), sessionId, actor, body.MilestoneId, body.Completed, body.Notes)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// UpdateMeetingData handles recording meeting attendance for a session.
func (h *SessionsHandler) UpdateMeetingData(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var body api.MeetingDataUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.Participants < 0 || body.AttendanceRate < 0 || body.AttendanceRate > 100 || body.DurationMinutes < 0 {
		http.Error(w, "participants, attendance_rate and duration_minutes must be in range", http.StatusBadRequest)
		return
	}

	session, err := h.Store.UpdateMeetingData(r.Context(), sessionId, actor, body.Participants, body.AttendanceRate, body.DurationMinutes, body.RecordingUrl)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSession(session))
}

// SubmitReview handles a participant reviewing a completed session.
func (h *SessionsHandler) SubmitReview(w http.ResponseWriter, r *http.Request, sessionId string) {
	actor := middleware.Actor(r)
	if actor == "" {
		http.Error(w, "missing wallet address header", http.StatusBadRequest)
		return
	}

	var body api.NewReview
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	session, err := h.Store.SubmitReview(r.Context(), sessionId, actor, body.Rating, body.Comment)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiSession(session))
}

// notify sends a fire-and-forget notification. Failures are logged, never
// surfaced to the caller.
func (h *SessionsHandler) notify(r *http.Request, walletAddress string, message notifications.Message) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Notify(r.Context(), walletAddress, message); err != nil {
		slog.Error("failed to deliver notification", "wallet_address", walletAddress, "type", string(message.Type), "error", err)
	}
}
