package gamestate

import (
	"github.com/alexvielma/bingove/internal/models"
)

// PutInput holds the record to store
type PutInput struct {
	Record *models.GameRecord
}
