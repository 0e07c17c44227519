package main

import (
	"context"
	"fmt"
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
	"github.com/alexvielma/bingove/internal/logger"
	"github.com/alexvielma/bingove/internal/models"
	"github.com/alexvielma/bingove/internal/repositories/gamestate"
	ledgerRepo "github.com/alexvielma/bingove/internal/repositories/ledger"
	presenceRepo "github.com/alexvielma/bingove/internal/repositories/presence"
	announcerService "github.com/alexvielma/bingove/internal/services/announcer"
	gameService "github.com/alexvielma/bingove/internal/services/game"
)

// Standalone announcer: mirrors the live draw into Discord without serving
// the HTTP API. Useful when the bot should survive API restarts.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("bingove-bot", cfg.Debug)

	if cfg.Discord.BotToken == "" {
		logger.Fatal().Msg("DISCORD_BOT_TOKEN is required")
	}

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

	gameSvc, err := gameService.NewService(&gameService.Config{
		CountdownDuration: time.Duration(cfg.Game.CountdownSeconds) * time.Second,
		BallInterval:      time.Duration(cfg.Game.BallIntervalSeconds) * time.Second,
		DefaultGameConfig: models.GameConfig{
			Price:      cfg.Game.TicketPrice,
			MaxTickets: cfg.Game.MaxTickets,
		},
		Store:        store,
		LedgerRepo:   ledger,
		PresenceRepo: presence,
		Roller:       bingo.New(&bingo.Config{}),
		Clock:        &clock.DefaultClock{},
		UUID:         uuid.New(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game service")
	}

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

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("error stopping bot")
	}

	logger.Info().Msg("bot has been shut down")
}
