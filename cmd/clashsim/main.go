package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spellclash/spellclash-go/internal/catalog"
	"github.com/spellclash/spellclash-go/internal/config"
	"github.com/spellclash/spellclash-go/internal/game"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	showLog    = flag.Bool("log", true, "print the human-readable match log")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	catalog.SetRegistryPath(cfg.Catalog.Path)
	cat, err := catalog.Shared()
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("cards", cat.Size()),
	)

	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("match seed", zap.Int64("seed", seed))

	deciders := make(map[string]game.Decider, len(cfg.Match.Players))
	for _, name := range cfg.Match.Players {
		deciders[name] = game.NewHeuristicDecider()
	}

	match, err := game.NewMatch(cfg.Match.Players, cat, deciders, game.MatchConfig{
		StartingHealth: cfg.Match.StartingHealth,
		HandSize:       cfg.Match.HandSize,
		ClashCount:     cfg.Match.ClashCount,
		MaxRounds:      cfg.Match.MaxRounds,
		DraftSets:      cfg.Match.DraftSets,
		DraftSetSize:   cfg.Match.DraftSetSize,
	}, rng, logger)
	if err != nil {
		logger.Fatal("failed to set up match", zap.Error(err))
	}

	result, err := match.Run()
	if err != nil {
		logger.Fatal("match aborted", zap.Error(err))
	}

	if *showLog {
		for _, line := range match.State.MatchLog {
			fmt.Println(line)
		}
	}
	if result.Drawn {
		fmt.Printf("Match drawn after %d rounds\n", result.Rounds)
	} else {
		fmt.Printf("%s wins after %d rounds\n", result.Winner, result.Rounds)
	}
}

// initLogger builds the process logger from the logging section. An
// unrecognized level falls back to info rather than failing startup.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
