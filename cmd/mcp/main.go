package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/db"
	"github.com/urmzd/meshgate/pkg/device/schema"
	"github.com/urmzd/meshgate/pkg/gateway"
	meshmcp "github.com/urmzd/meshgate/pkg/mcp"
	"github.com/urmzd/meshgate/pkg/store"
)

func main() {
	// Logging must go to stderr, stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/meshgate/meshgate.db)")
	devicesPath := flag.String("devices", "config.json", "Path to the device document")
	seedPath := flag.String("seed", "", "YAML seed applied on first run")
	profileName := flag.String("profile", "", "Profile to activate, created from the seed if missing")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	seed, err := db.LoadSeed(*seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seed")
	}
	if *profileName != "" {
		seed.Profile = *profileName
	}
	if err := database.Bootstrap(ctx, seed); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database")
	}
	if *profileName != "" {
		if _, err := database.ActivateProfile(ctx, *profileName, seed); err != nil {
			log.Fatal().Err(err).Str("profile", *profileName).Msg("Failed to activate profile")
		}
	}

	// The API process owns the bridge; this process only reports it as down
	mcpServer := meshmcp.NewServer(
		store.New(*devicesPath, store.DefaultOptions()),
		gateway.NewForwarder(database, 10*time.Second),
		nil,
		schema.NewValidator(),
	)

	log.Info().Str("devices", *devicesPath).Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
