package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/vocabdrop/internal/game"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Catalog CatalogConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP adapter configuration
type ServerConfig struct {
	Port          string        `env:"PORT" envDefault:"5175"`
	Host          string        `env:"HOST" envDefault:""`
	Env           string        `env:"ENV" envDefault:"development"` // "development" or "production"
	ClientOrigin  string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SweepEvery    time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`
	TickInterval  time.Duration `env:"TICK_INTERVAL" envDefault:"250ms"`
	DailySalt     string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// GameConfig holds per-session game tuning
type GameConfig struct {
	RoundsToWin     int           `env:"ROUNDS_TO_WIN" envDefault:"5"`
	ItemsPerRound   int           `env:"ITEMS_PER_ROUND" envDefault:"8"`
	MaxMistakes     int           `env:"MAX_MISTAKES" envDefault:"3"`
	FastThreshold   time.Duration `env:"FAST_THRESHOLD" envDefault:"2s"`
	MediumThreshold time.Duration `env:"MEDIUM_THRESHOLD" envDefault:"5s"`
	FastScore       int           `env:"FAST_SCORE" envDefault:"100"`
	MediumScore     int           `env:"MEDIUM_SCORE" envDefault:"70"`
	SlowScore       int           `env:"SLOW_SCORE" envDefault:"50"`
	NextRoundDelay  time.Duration `env:"NEXT_ROUND_DELAY" envDefault:"600ms"`
}

// CatalogConfig selects the vocabulary source
type CatalogConfig struct {
	File string `env:"VOCAB_FILE"`
	DB   string `env:"VOCAB_DB"` // SQLite path; seeded from File or the embedded list when empty
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from an explicit variable map instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Settings().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Settings converts the game section into core settings.
func (c *Config) Settings() game.Settings {
	g := c.Game
	return game.Settings{
		RoundsToWin:     g.RoundsToWin,
		ItemsPerRound:   g.ItemsPerRound,
		MaxMistakes:     g.MaxMistakes,
		FastThreshold:   g.FastThreshold,
		MediumThreshold: g.MediumThreshold,
		FastScore:       g.FastScore,
		MediumScore:     g.MediumScore,
		SlowScore:       g.SlowScore,
		NextRoundDelay:  g.NextRoundDelay,
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address in host:port format
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
