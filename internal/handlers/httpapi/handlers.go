package httpapi

import (
	"net/http"

	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	gameService "github.com/alexvielma/bingove/internal/services/game"
	paymentsService "github.com/alexvielma/bingove/internal/services/payments"
)

// WSUpgrader serves the live websocket endpoint
type WSUpgrader interface {
	ServeWs(w http.ResponseWriter, r *http.Request)
}

// Config holds all HTTP handler dependencies
type Config struct {
	GameService     gameService.Service
	PaymentsService paymentsService.Service
	LedgerRepo      ledgerRepo.Repository
	Hub             WSUpgrader

	// AdminToken guards the operator endpoints
	AdminToken string
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	game       gameService.Service
	payments   paymentsService.Service
	ledgerRepo ledgerRepo.Repository
	hub        WSUpgrader
	adminToken string
}

// New creates a new Handlers instance with all dependencies
func New(cfg *Config) *Handlers {
	return &Handlers{
		game:       cfg.GameService,
		payments:   cfg.PaymentsService,
		ledgerRepo: cfg.LedgerRepo,
		hub:        cfg.Hub,
		adminToken: cfg.AdminToken,
	}
}
