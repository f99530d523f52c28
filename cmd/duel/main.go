// Package main provides the terminal duel client for Dungeon Stars.
// It wires together configuration, logging, the class table, randomness,
// the battle engine, and the console frontend.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeonstars/internal/config"
	"github.com/cory-johannsen/dungeonstars/internal/frontend/console"
	"github.com/cory-johannsen/dungeonstars/internal/game/character"
	"github.com/cory-johannsen/dungeonstars/internal/game/combat"
	"github.com/cory-johannsen/dungeonstars/internal/game/dice"
	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
	"github.com/cory-johannsen/dungeonstars/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and DSTARS_* env when empty)")
	class := flag.String("class", "", "character class: mage, archer, knight, rogue (overrides battle.player_class)")
	gender := flag.String("gender", "male", "character gender: male, female")
	skin := flag.String("skin", "light", "skin tone: light, medium, dark")
	hair := flag.String("hair", "short", "hair style: short, medium, hood")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	// Load class table
	classes := ruleset.Default()
	if cfg.Battle.ClassesFile != "" {
		classes, err = ruleset.LoadRegistry(cfg.Battle.ClassesFile)
		if err != nil {
			logger.Fatal("loading class table", zap.Error(err))
		}
	}

	// Create character
	playerClass := cfg.Battle.PlayerClass
	if *class != "" {
		playerClass = *class
	}
	appearance, err := character.NewBuilder().
		Class(playerClass).
		Gender(*gender).
		SkinTone(*skin).
		HairStyle(*hair).
		Build()
	if err != nil {
		logger.Fatal("creating character", zap.Error(err))
	}

	// Randomness
	var src dice.Source = dice.NewCryptoSource()
	if cfg.Battle.Seed != 0 {
		src = dice.NewSeededSource(cfg.Battle.Seed)
	}
	roller := dice.NewLoggedRoller(src, logger.Named("dice"))

	battle := combat.NewBattle(appearance.Class, classes, roller, logger.Named("combat"))
	session := console.NewSession(battle, classes, appearance,
		console.NewPalette(cfg.Console.Color), cfg.Console.Prompt, logger.Named("console"))

	logger.Info("duel client initialized",
		zap.String("class", appearance.Class.String()),
		zap.Bool("seeded", cfg.Battle.Seed != 0),
		zap.Duration("startup", time.Since(start)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Fatal("console session", zap.Error(err))
	}
	logger.Info("duel client stopped", zap.Duration("uptime", time.Since(start)))
}
