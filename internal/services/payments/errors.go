package payments

// PaymentError is a custom error type for ledger-related errors
type PaymentError string

// Error implements the error interface
func (e PaymentError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidTicketsCount PaymentError = "tickets count must be positive"
	ErrInvalidAmount       PaymentError = "amount must be positive"
	ErrEmptyUserID         PaymentError = "user ID cannot be empty"
	ErrNilConfig           PaymentError = "config cannot be nil"
	ErrNilLedgerRepo       PaymentError = "ledger repository cannot be nil"
	ErrNilGameService      PaymentError = "game service cannot be nil"
	ErrNilRoller           PaymentError = "roller cannot be nil"
	ErrNilClock            PaymentError = "clock cannot be nil"
	ErrNilUUIDGenerator    PaymentError = "UUID generator cannot be nil"
)
