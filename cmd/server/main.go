package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexvielma/bingove/internal/bingo"
	"github.com/alexvielma/bingove/internal/common/clock"
	"github.com/alexvielma/bingove/internal/common/uuid"
	"github.com/alexvielma/bingove/internal/config"
	"github.com/alexvielma/bingove/internal/handlers/discord"
	"github.com/alexvielma/bingove/internal/handlers/httpapi"
	"github.com/alexvielma/bingove/internal/handlers/ws"
	"github.com/alexvielma/bingove/internal/logger"
	"github.com/alexvielma/bingove/internal/models"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	presenceRepo "github.com/alexvielma/bingove/internal/repositories/presence"
	announcerService "github.com/alexvielma/bingove/internal/services/announcer"
	gameService "github.com/alexvielma/bingove/internal/services/game"
	paymentsService "github.com/alexvielma/bingove/internal/services/payments"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("bingove-server", cfg.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	store, err := gamestate.NewRedis(&gamestate.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game state store")
	}

	presence, err := presenceRepo.NewRedis(&presenceRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create presence repository")
	}

	ledger, err := ledgerRepo.New(cfg.Ledger.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open ledger database")
	}

	roller := bingo.New(&bingo.Config{})

	gameSvc, err := gameService.NewService(&gameService.Config{
		CountdownDuration: time.Duration(cfg.Game.CountdownSeconds) * time.Second,
		BallInterval:      time.Duration(cfg.Game.BallIntervalSeconds) * time.Second,
		DefaultGameConfig: defaultGameConfig(cfg),
		Store:             store,
		LedgerRepo:        ledger,
		PresenceRepo:      presence,
		Roller:            roller,
		Clock:             &clock.DefaultClock{},
		UUID:              uuid.New(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game service")
	}

	paymentsSvc, err := paymentsService.NewService(&paymentsService.Config{
		JackpotReservePercent: cfg.Game.JackpotReservePercent,
		LedgerRepo:            ledger,
		GameService:           gameSvc,
		Roller:                roller,
		Clock:                 &clock.DefaultClock{},
		UUID:                  uuid.New(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create payments service")
	}

	hub := ws.New(&ws.Config{
		GameService:  gameSvc,
		PresenceRepo: presence,
	})
	if err := hub.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to start websocket hub")
	}

	go gameSvc.RunScheduler(ctx)

	if cfg.Discord.BotToken != "" {
		announcer, err := announcerService.NewService(&announcerService.Config{})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create announcer")
		}

		bot, err := discord.New(&discord.Config{
			Token:       cfg.Discord.BotToken,
			ChannelID:   cfg.Discord.ChannelID,
			GameService: gameSvc,
			Announcer:   announcer,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create discord bot")
		}

		if err := bot.Start(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to start discord bot")
		}
		defer bot.Stop()
	}

	handlers := httpapi.New(&httpapi.Config{
		GameService:     gameSvc,
		PaymentsService: paymentsSvc,
		LedgerRepo:      ledger,
		Hub:             hub,
		AdminToken:      cfg.Server.AdminToken,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handlers.Router(),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}
}

func defaultGameConfig(cfg *config.Config) models.GameConfig {
	return models.GameConfig{
		Price:      cfg.Game.TicketPrice,
		MaxTickets: cfg.Game.MaxTickets,
	}
}
