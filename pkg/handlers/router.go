// Package handlers assembles the HTTP API from the per-resource handler
// packages.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/skillswap/skill-exchange/pkg/handlers/certificates"
	"github.com/skillswap/skill-exchange/pkg/handlers/ledger"
	"github.com/skillswap/skill-exchange/pkg/handlers/requests"
	"github.com/skillswap/skill-exchange/pkg/handlers/sessions"
	"github.com/skillswap/skill-exchange/pkg/handlers/users"
	"github.com/skillswap/skill-exchange/pkg/metrics"
	"github.com/skillswap/skill-exchange/pkg/middleware"
	"github.com/skillswap/skill-exchange/pkg/notifications"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// NewRouter builds the chi router for the whole API surface.
func NewRouter(store storage.ApiStore, notifier notifications.Notifier, logger *slog.Logger) http.Handler {
	usersHandler := users.NewUsersHandler(store)
	requestsHandler := requests.NewRequestsHandler(store, notifier)
	sessionsHandler := sessions.NewSessionsHandler(store, notifier)
	certificatesHandler := certificates.NewCertificatesHandler(store)
	ledgerHandler := ledger.NewLedgerHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.NewStructuredLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/", usersHandler.CreateUser)
		r.Get("/", usersHandler.ListUsers)
		r.Get("/{walletAddress}", func(w http.ResponseWriter, r *http.Request) {
			usersHandler.GetUserByWallet(w, r, chi.URLParam(r, "walletAddress"))
		})
		r.Delete("/{walletAddress}", func(w http.ResponseWriter, r *http.Request) {
			usersHandler.DeleteUser(w, r, chi.URLParam(r, "walletAddress"))
		})
		r.Get("/{walletAddress}/sessions", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.ListSessionsByUser(w, r, chi.URLParam(r, "walletAddress"))
		})
		r.Get("/{walletAddress}/certificates", func(w http.ResponseWriter, r *http.Request) {
			certificatesHandler.ListCertificatesByUser(w, r, chi.URLParam(r, "walletAddress"))
		})
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", requestsHandler.CreateRequest)
		r.Get("/", requestsHandler.ListRequests)
		r.Get("/{requestId}", func(w http.ResponseWriter, r *http.Request) {
			requestsHandler.GetRequestById(w, r, chi.URLParam(r, "requestId"))
		})
		r.Post("/{requestId}/bids", func(w http.ResponseWriter, r *http.Request) {
			requestsHandler.SubmitBid(w, r, chi.URLParam(r, "requestId"))
		})
		r.Post("/{requestId}/bids/{bidId}/accept", func(w http.ResponseWriter, r *http.Request) {
			requestsHandler.AcceptBid(w, r, chi.URLParam(r, "requestId"), chi.URLParam(r, "bidId"))
		})
		r.Post("/{requestId}/bids/{bidId}/reject", func(w http.ResponseWriter, r *http.Request) {
			requestsHandler.RejectBid(w, r, chi.URLParam(r, "requestId"), chi.URLParam(r, "bidId"))
		})
		r.Post("/{requestId}/bids/{bidId}/withdraw", func(w http.ResponseWriter, r *http.Request) {
			requestsHandler.WithdrawBid(w, r, chi.URLParam(r, "requestId"), chi.URLParam(r, "bidId"))
		})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionsHandler.BookSession)
		r.Get("/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.GetSessionById(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Post("/{sessionId}/approve", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.ApproveSession(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Post("/{sessionId}/reject", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.RejectSession(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Post("/{sessionId}/cancel", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.CancelSession(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Post("/{sessionId}/start", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.StartSession(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Post("/{sessionId}/complete", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.CompleteSession(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Put("/{sessionId}/progress/milestone", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.UpdateMilestone(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Put("/{sessionId}/progress/meeting", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.UpdateMeetingData(w, r, chi.URLParam(r, "sessionId"))
		})
		r.Post("/{sessionId}/reviews", func(w http.ResponseWriter, r *http.Request) {
			sessionsHandler.SubmitReview(w, r, chi.URLParam(r, "sessionId"))
		})
	})

	r.Get("/certificates/{certificateId}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "certificateId"))
		if err != nil {
			http.Error(w, "certificateId must be a UUID", http.StatusBadRequest)
			return
		}
		certificatesHandler.GetCertificateById(w, r, id)
	})

	r.Get("/transactions/{transactionId}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "transactionId"))
		if err != nil {
			http.Error(w, "transactionId must be a UUID", http.StatusBadRequest)
			return
		}
		ledgerHandler.GetTransactionById(w, r, id)
	})

	r.Get("/ledger", ledgerHandler.ListLedgerEntries)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.ActorHeader},
	}).Handler(r)
}
