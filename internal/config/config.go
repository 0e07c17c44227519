package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the full process configuration, loaded from the environment
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`

		// AdminToken guards the operator endpoints
		AdminToken string `env:"ADMIN_TOKEN,required"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Ledger struct {
		// Path is the SQLite database file
		Path string `env:"LEDGER_PATH" envDefault:"bingove.db"`
	}

	Game struct {
		// CountdownSeconds is the fixed pre-draw countdown
		CountdownSeconds int `env:"COUNTDOWN_SECONDS" envDefault:"300"`

		// BallIntervalSeconds is the auto-mode delay between balls
		BallIntervalSeconds int `env:"BALL_INTERVAL_SECONDS" envDefault:"15"`

		// TicketPrice is the default unit price for a fresh draw
		TicketPrice float64 `env:"TICKET_PRICE" envDefault:"2"`

		// MaxTickets caps sales; reaching it auto-starts the countdown
		MaxTickets int `env:"MAX_TICKETS" envDefault:"200"`

		// JackpotReservePercent of every approved payment feeds the jackpot
		JackpotReservePercent float64 `env:"JACKPOT_RESERVE_PERCENT" envDefault:"20"`
	}

	Discord struct {
		// BotToken is empty when the announcer bot is disabled
		BotToken string `env:"DISCORD_BOT_TOKEN" envDefault:""`

		// ChannelID is where the bot posts draw announcements
		ChannelID string `env:"DISCORD_CHANNEL_ID" envDefault:""`
	}
}

// Load reads .env if present and parses the environment
func Load() (*Config, error) {
	// A missing .env is fine, production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
