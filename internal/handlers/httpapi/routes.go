package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the full route tree
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Live updates
	r.Get("/ws", h.hub.ServeWs)

	// Public game state
	r.Get("/api/game", h.handleGetGame)
	r.Get("/api/pool", h.handleGetPool)
	r.Get("/api/archive/{drawId}", h.handleGetArchivedGame)

	// Buyers
	r.Post("/api/payments", h.handleCreatePayment)
	r.Get("/api/users/{userId}/payments", h.handleListUserPayments)
	r.Get("/api/users/{userId}/tickets", h.handleListUserTickets)

	// Players
	r.Post("/api/claims", h.handleSubmitClaim)
	r.Post("/api/claims/payout-details", h.handleSubmitPayoutDetails)

	// Operator endpoints
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)

		r.Post("/api/admin/game/init", h.handleInitializeGame)
		r.Post("/api/admin/game/countdown", h.handleStartCountdown)
		r.Post("/api/admin/game/skip-countdown", h.handleSkipCountdown)
		r.Post("/api/admin/game/pause", h.handlePauseGame)
		r.Post("/api/admin/game/resume", h.handleResumeGame)
		r.Post("/api/admin/game/mode", h.handleSetMode)
		r.Post("/api/admin/game/config", h.handleUpdateConfig)
		r.Post("/api/admin/game/draw", h.handleDrawNextBall)
		r.Post("/api/admin/game/archive", h.handleArchiveGame)
		r.Post("/api/admin/reset", h.handleFullReset)

		r.Post("/api/admin/claims/confirm", h.handleConfirmClaim)
		r.Post("/api/admin/claims/reject", h.handleRejectClaim)
		r.Post("/api/admin/claims/mark-paid", h.handleMarkPaid)

		r.Get("/api/admin/payments/pending", h.handleListPendingPayments)
		r.Post("/api/admin/payments/{id}/approve", h.handleApprovePayment)
		r.Post("/api/admin/payments/{id}/reject", h.handleRejectPayment)

		r.Get("/api/admin/tickets", h.handleListDrawTickets)
	})

	return r
}

// requireAdmin checks the bearer token on operator endpoints
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
			respondError(w, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
