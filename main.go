// main.go
//
// Entry point for the vocabdrop server.
// Responsibilities:
//   - Load .env and parse configuration.
//   - Configure zerolog.
//   - Build the vocabulary catalog (embedded list, VOCAB_FILE, or VOCAB_DB).
//   - Run the session janitor and the HTTP/WebSocket adapter until SIGINT/SIGTERM.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrop/assets"
	"github.com/robalobadob/vocabdrop/internal/config"
	"github.com/robalobadob/vocabdrop/internal/httpserver"
	"github.com/robalobadob/vocabdrop/internal/store"
	"github.com/robalobadob/vocabdrop/internal/vocab"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := vocab.Source{File: cfg.Catalog.File}
	if cfg.Catalog.DB != "" {
		db, err := openDB(cfg.Catalog.DB)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Catalog.DB).Msg("open vocab db")
		}
		defer db.Close()
		if err := migrate(db, assets.Migrations()); err != nil {
			log.Fatal().Err(err).Msg("migrate vocab db")
		}
		src.DB = db
	}
	cat := mustCatalog(ctx, src, cfg)

	mem := store.NewMemoryStore()
	defer mem.Close()
	go store.RunJanitor(ctx, mem, cfg.Server.SweepEvery, cfg.Server.SessionTTL)

	srv := httpserver.New(mem, cat, cfg.Settings(), httpserver.Config{
		ClientOrigin:  cfg.Server.ClientOrigin,
		SessionSecret: cfg.Server.SessionSecret,
		SessionTTL:    cfg.Server.SessionTTL,
		TickInterval:  cfg.Server.TickInterval,
		DailySalt:     cfg.Server.DailySalt,
		Secure:        cfg.IsProduction(),
	})

	log.Info().
		Str("addr", cfg.Addr()).
		Int("entries", cat.Len()).
		Str("env", cfg.Server.Env).
		Msg("starting vocabdrop")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(c config.LoggingConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// mustCatalog loads the catalog and checks it can fill a round.
func mustCatalog(ctx context.Context, src vocab.Source, cfg *config.Config) *vocab.Catalog {
	cat, err := vocab.Load(ctx, src)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}
	if err := cfg.Settings().CheckCatalog(cat.Len()); err != nil {
		log.Fatal().Err(err).Int("entries", cat.Len()).Msg("catalog cannot fill a round")
	}
	return cat
}
