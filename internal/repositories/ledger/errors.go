package ledger

import "errors"

var (
	// ErrPaymentNotFound is returned when a payment request does not exist
	ErrPaymentNotFound = errors.New("payment request not found")

	// ErrPaymentReviewed is returned when approving or rejecting a payment
	// that already left the pending state
	ErrPaymentReviewed = errors.New("payment request already reviewed")

	// ErrTicketNotFound is returned when a ticket does not exist
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrArchiveNotFound is returned when an archived draw does not exist
	ErrArchiveNotFound = errors.New("archived game not found")
)
