package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/alexvielma/bingove/internal/logger"
	"github.com/alexvielma/bingove/internal/models"
	announcerService "github.com/alexvielma/bingove/internal/services/announcer"
	gameService "github.com/alexvielma/bingove/internal/services/game"
)

const (
	colorGreen  = 0x00ff00
	colorYellow = 0xffcc00
	colorRed    = 0xff4444
)

// Bot mirrors the live draw into a Discord channel. It is read-only: every
// announcement comes from watching the record stream, never from commands.
type Bot struct {
	session   *discordgo.Session
	game      gameService.Service
	announcer announcerService.Service
	channelID string
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// ChannelID is where announcements are posted
	ChannelID string

	// Game service
	GameService gameService.Service

	// Announcer turns record changes into messages
	Announcer announcerService.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}
	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.Announcer == nil {
		return nil, errors.New("announcer cannot be nil")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Bot{
		session:   session,
		game:      cfg.GameService,
		announcer: cfg.Announcer,
		channelID: cfg.ChannelID,
	}, nil
}

// Start opens the Discord connection and begins mirroring record changes
// until ctx is done
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	updates, err := b.game.Subscribe(ctx)
	if err != nil {
		b.session.Close()
		return err
	}

	go b.mirror(ctx, updates)

	logger.Info().Str("channel_id", b.channelID).Msg("discord announcer running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	return b.session.Close()
}

// mirror consumes record snapshots and posts the resulting announcements
func (b *Bot) mirror(ctx context.Context, updates <-chan *models.GameRecord) {
	var previous *models.GameRecord

	for record := range updates {
		out, err := b.announcer.Diff(ctx, &announcerService.DiffInput{
			Previous: previous,
			Current:  record,
		})
		previous = record
		if err != nil {
			logger.Error().Err(err).Msg("record diff failed")
			continue
		}

		for _, event := range out.Events {
			b.post(event)
		}
	}
}

// post sends one announcement embed to the channel
func (b *Bot) post(event *announcerService.Event) {
	embed := &discordgo.MessageEmbed{
		Title:       event.Title,
		Description: event.Message,
		Color:       embedColor(event.Type),
	}

	if _, err := b.session.ChannelMessageSendEmbed(b.channelID, embed); err != nil {
		logger.Error().Err(err).Str("event_type", string(event.Type)).Msg("failed to post announcement")
	}
}

func embedColor(t announcerService.EventType) int {
	switch t {
	case announcerService.EventTypeClaimSubmitted, announcerService.EventTypePaused:
		return colorYellow
	case announcerService.EventTypeClaimRejected:
		return colorRed
	default:
		return colorGreen
	}
}
