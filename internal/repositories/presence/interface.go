package presence

import (
	"context"

	"github.com/alexvielma/bingove/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/alexvielma/bingove/internal/repositories/presence Repository

// Repository is the ephemeral online-user registry. Entries are written when a
// connection opens and removed when the server observes it close; the online
// count is simply the registry's cardinality.
type Repository interface {
	// Connect records a user as online
	Connect(ctx context.Context, input *ConnectInput) error

	// Disconnect removes a user's liveness entry
	Disconnect(ctx context.Context, input *DisconnectInput) error

	// Count returns the number of online users
	Count(ctx context.Context) (int, error)

	// List returns all liveness entries
	List(ctx context.Context) ([]*models.PresenceEntry, error)

	// SubscribeCount delivers the current online count and every subsequent
	// change until ctx is done
	SubscribeCount(ctx context.Context) (<-chan int, error)

	// Clear wipes the registry
	Clear(ctx context.Context) error
}
