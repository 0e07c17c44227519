package gamestate

import (
	"context"

	"github.com/alexvielma/bingove/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/alexvielma/bingove/internal/repositories/gamestate Store

// UpdateFunc transforms the current record into its successor. It must be a
// pure function of its input: the store re-runs it when the commit loses a
// race, so it can carry no side effects. Returning an error aborts the
// transaction without writing anything.
type UpdateFunc func(record *models.GameRecord) (*models.GameRecord, error)

// Store is the single live game record behind atomic read-modify-write
// semantics and push-based subscription.
type Store interface {
	// Get returns the current record
	Get(ctx context.Context) (*models.GameRecord, error)

	// Put unconditionally replaces the record
	Put(ctx context.Context, input *PutInput) error

	// Update applies fn as one atomic read-modify-write transaction,
	// retrying under contention, and returns the committed record
	Update(ctx context.Context, fn UpdateFunc) (*models.GameRecord, error)

	// Subscribe delivers the current record and then a full snapshot after
	// every committed change until ctx is done
	Subscribe(ctx context.Context) (<-chan *models.GameRecord, error)
}
