// Command wasteland runs the interactive post-apocalyptic RPG.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wastelandrpg/wasteland/internal/ai"
	"github.com/wastelandrpg/wasteland/internal/config"
	"github.com/wastelandrpg/wasteland/internal/game/dice"
	"github.com/wastelandrpg/wasteland/internal/game/handlers"
	"github.com/wastelandrpg/wasteland/internal/observability"
	"github.com/wastelandrpg/wasteland/internal/persistence"
	"github.com/wastelandrpg/wasteland/internal/server"
	"github.com/wastelandrpg/wasteland/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wasteland: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	// .env is optional; it carries ANTHROPIC_API_KEY in development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	store := persistence.NewStore(
		persistence.WithDir(cfg.Saves.Dir),
		persistence.WithLogger(logger),
	)

	var dm ai.Client
	if cfg.AI.Enabled {
		dm = ai.NewAnthropicClient(cfg.AI.Model, cfg.AI.MaxTokens, logger)
		logger.Info("dungeon master enabled", zap.String("model", cfg.AI.Model))
	}

	sess := session.New(session.Options{
		Input:            os.Stdin,
		Output:           os.Stdout,
		Store:            store,
		Handler:          handlers.New(roller, logger),
		DM:               dm,
		AutosaveInterval: cfg.Game.AutosaveInterval,
		AutosaveSlot:     cfg.Game.AutosaveSlot,
		Logger:           logger,
	})

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("session", sess)
	return lifecycle.Run(context.Background())
}
