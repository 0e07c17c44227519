package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	gameService "github.com/alexvielma/bingove/internal/services/game"
	paymentsService "github.com/alexvielma/bingove/internal/services/payments"
)

// ==================== Game State ====================

func (h *Handlers) handleGetGame(w http.ResponseWriter, r *http.Request) {
	record, err := h.game.GetGame(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, record)
}

func (h *Handlers) handleGetPool(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.GetPool(r.Context(), &paymentsService.GetPoolInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Pool)
}

func (h *Handlers) handleGetArchivedGame(w http.ResponseWriter, r *http.Request) {
	drawID := chi.URLParam(r, "drawId")
	if drawID == "" {
		respondError(w, BadRequest("Missing drawId parameter"))
		return
	}

	archive, err := h.ledgerRepo.GetArchivedGame(r.Context(), &ledgerRepo.GetArchivedGameInput{DrawID: drawID})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, archive)
}

// ==================== Payments ====================

func (h *Handlers) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.payments.CreatePaymentRequest(r.Context(), &paymentsService.CreatePaymentRequestInput{
		UserID:       req.UserID,
		TicketsCount: req.TicketsCount,
		Amount:       req.Amount,
		Reference:    req.Reference,
		Phone:        req.Phone,
		Last4Digits:  req.Last4Digits,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, out.Payment)
}

func (h *Handlers) handleListUserPayments(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.ListUserPayments(r.Context(), &paymentsService.ListUserPaymentsInput{
		UserID: chi.URLParam(r, "userId"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Payments)
}

func (h *Handlers) handleListUserTickets(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.ListUserTickets(r.Context(), &paymentsService.ListUserTicketsInput{
		UserID: chi.URLParam(r, "userId"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Tickets)
}

// ==================== Claims ====================

func (h *Handlers) handleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	var req SubmitClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.UserID == "" {
		respondError(w, BadRequest("userId is required"))
		return
	}

	cards := make([]gameService.ClaimCard, 0, len(req.Cards))
	for _, c := range req.Cards {
		cards = append(cards, gameService.ClaimCard{
			TicketID: c.TicketID,
			Numbers:  c.Numbers,
		})
	}

	out, err := h.game.SubmitClaim(r.Context(), &gameService.SubmitClaimInput{
		UserID: req.UserID,
		Cards:  cards,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, map[string]interface{}{
		"timestamp":      out.Timestamp,
		"fullHouseCount": out.FullHouseCount,
		"record":         out.Record,
	})
}

func (h *Handlers) handleSubmitPayoutDetails(w http.ResponseWriter, r *http.Request) {
	var req PayoutDetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.TicketID == "" || req.Details == nil {
		respondError(w, BadRequest("ticketId and details are required"))
		return
	}

	out, err := h.game.SubmitPayoutDetails(r.Context(), &gameService.SubmitPayoutDetailsInput{
		TicketID: req.TicketID,
		Details:  req.Details,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, out.Record)
}
