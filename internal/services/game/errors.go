package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidGameState     GameError = "operation not allowed in current game state"
	ErrClaimNotAdmitted     GameError = "claim not admitted in current game state"
	ErrTicketAlreadyClaimed GameError = "ticket already appears in a claim"
	ErrClaimNotFound        GameError = "claim group not found"
	ErrWinnerNotFound       GameError = "no winner holds that ticket"
	ErrNoCardsSubmitted     GameError = "claim must contain at least one card"
	ErrNilConfig            GameError = "config cannot be nil"
	ErrNilStore             GameError = "game state store cannot be nil"
	ErrNilLedgerRepo        GameError = "ledger repository cannot be nil"
	ErrNilPresenceRepo      GameError = "presence repository cannot be nil"
	ErrNilRoller            GameError = "roller cannot be nil"
	ErrNilClock             GameError = "clock cannot be nil"
	ErrNilUUIDGenerator     GameError = "UUID generator cannot be nil"
)
