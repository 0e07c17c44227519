package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/alexvielma/bingove/internal/logger"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	gameService "github.com/alexvielma/bingove/internal/services/game"
	paymentsService "github.com/alexvielma/bingove/internal/services/payments"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidState   = "INVALID_GAME_STATE"
	ErrCodeAlreadyClaimed = "TICKET_ALREADY_CLAIMED"
)

// APIError represents an error with an HTTP status code and error code
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrBadRequest   = &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: "Bad request"}
	ErrUnauthorized = &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: "Unauthorized"}
	ErrNotFound     = &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: "Not found"}
)

// BadRequest creates a 400 error with custom message
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: message}
}

// NotFound creates a 404 error with custom message
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a 409 error with custom message
func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: message}
}

// InternalError creates a 500 error, logs the original error
func InternalError(err error) *APIError {
	logger.Error().Err(err).Msg("internal error")
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondOK writes a 200 OK JSON response
func respondOK(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a 201 Created JSON response
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*APIError); ok {
		respondJSON(w, apiErr.Status, apiErr)
		return
	}
	apiErr := ToAPIError(err)
	respondJSON(w, apiErr.Status, apiErr)
}

// decodeJSON decodes JSON from request body into the target
func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return BadRequest("Request body is empty")
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// ToAPIError converts service errors to appropriate API errors
func ToAPIError(err error) *APIError {
	switch {
	case stderrors.Is(err, gamestate.ErrRecordNotFound):
		return NotFound("no live draw")
	case stderrors.Is(err, ledgerRepo.ErrPaymentNotFound):
		return NotFound("payment not found")
	case stderrors.Is(err, ledgerRepo.ErrTicketNotFound):
		return NotFound("ticket not found")
	case stderrors.Is(err, ledgerRepo.ErrArchiveNotFound):
		return NotFound("archived draw not found")
	case stderrors.Is(err, ledgerRepo.ErrPaymentReviewed):
		return Conflict("payment already reviewed")
	}

	var gameErr gameService.GameError
	if stderrors.As(err, &gameErr) {
		switch gameErr {
		case gameService.ErrInvalidGameState, gameService.ErrClaimNotAdmitted:
			return &APIError{Status: http.StatusConflict, Code: ErrCodeInvalidState, Message: gameErr.Error()}
		case gameService.ErrTicketAlreadyClaimed:
			return &APIError{Status: http.StatusConflict, Code: ErrCodeAlreadyClaimed, Message: gameErr.Error()}
		case gameService.ErrClaimNotFound, gameService.ErrWinnerNotFound:
			return NotFound(gameErr.Error())
		default:
			return BadRequest(gameErr.Error())
		}
	}

	var paymentErr paymentsService.PaymentError
	if stderrors.As(err, &paymentErr) {
		return BadRequest(paymentErr.Error())
	}

	return InternalError(err)
}
