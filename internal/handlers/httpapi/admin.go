package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	gameService "github.com/alexvielma/bingove/internal/services/game"
	paymentsService "github.com/alexvielma/bingove/internal/services/payments"
)

// ==================== Lifecycle ====================

func (h *Handlers) handleInitializeGame(w http.ResponseWriter, r *http.Request) {
	var req InitializeGameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.game.InitializeGame(r.Context(), &gameService.InitializeGameInput{
		DrawID: req.DrawID,
		Config: req.Config,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, out.Record)
}

func (h *Handlers) handleStartCountdown(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.StartCountdown(r.Context(), &gameService.StartCountdownInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handleSkipCountdown(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.SkipCountdown(r.Context(), &gameService.SkipCountdownInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handlePauseGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.PauseGame(r.Context(), &gameService.PauseGameInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handleResumeGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.ResumeGame(r.Context(), &gameService.ResumeGameInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req SetModeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.game.SetMode(r.Context(), &gameService.SetModeInput{Mode: req.Mode})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.game.UpdateConfig(r.Context(), &gameService.UpdateConfigInput{
		Price:       req.Price,
		Prizes:      req.Prizes,
		StartTime:   req.StartTime,
		MaxTickets:  req.MaxTickets,
		PaymentInfo: req.PaymentInfo,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handleDrawNextBall(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.DrawNextBall(r.Context(), &gameService.DrawNextBallInput{})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, map[string]interface{}{
		"number":   out.Number,
		"finished": out.Finished,
		"record":   out.Record,
	})
}

func (h *Handlers) handleArchiveGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.ArchiveGame(r.Context(), &gameService.ArchiveGameInput{})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, map[string]interface{}{
		"archivedDrawId":  out.ArchivedDrawID,
		"archivedTickets": out.ArchivedTickets,
		"record":          out.Record,
	})
}

func (h *Handlers) handleFullReset(w http.ResponseWriter, r *http.Request) {
	out, err := h.game.FullReset(r.Context(), &gameService.FullResetInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

// ==================== Claims ====================

func (h *Handlers) handleConfirmClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.game.ConfirmClaim(r.Context(), &gameService.ConfirmClaimInput{
		UserID:    req.UserID,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, map[string]interface{}{
		"verifiedCount":      out.VerifiedCount,
		"firstPrizePosition": out.FirstPrizePosition,
		"record":             out.Record,
	})
}

func (h *Handlers) handleRejectClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.game.RejectClaim(r.Context(), &gameService.RejectClaimInput{
		UserID:    req.UserID,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

func (h *Handlers) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	var req MarkPaidRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.game.MarkPaid(r.Context(), &gameService.MarkPaidInput{TicketID: req.TicketID})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}

// ==================== Payments ====================

func (h *Handlers) handleListPendingPayments(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.ListPendingPayments(r.Context(), &paymentsService.ListPendingPaymentsInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Payments)
}

func (h *Handlers) handleApprovePayment(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.ApprovePayment(r.Context(), &paymentsService.ApprovePaymentInput{
		PaymentID: chi.URLParam(r, "id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, map[string]interface{}{
		"tickets":     out.Tickets,
		"autoStarted": out.AutoStarted,
		"record":      out.Record,
	})
}

func (h *Handlers) handleRejectPayment(w http.ResponseWriter, r *http.Request) {
	_, err := h.payments.RejectPayment(r.Context(), &paymentsService.RejectPaymentInput{
		PaymentID: chi.URLParam(r, "id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "payment rejected"})
}

// ==================== Tickets ====================

func (h *Handlers) handleListDrawTickets(w http.ResponseWriter, r *http.Request) {
	record, err := h.game.GetGame(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	tickets, err := h.ledgerRepo.ListTicketsByDraw(r.Context(), &ledgerRepo.ListTicketsByDrawInput{
		DrawID: record.DrawID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tickets)
}
