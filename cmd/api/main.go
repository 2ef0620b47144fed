package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/api"
	"github.com/urmzd/meshgate/pkg/db"
	"github.com/urmzd/meshgate/pkg/device"
	"github.com/urmzd/meshgate/pkg/device/schema"
	"github.com/urmzd/meshgate/pkg/gateway"
	"github.com/urmzd/meshgate/pkg/notify"
	"github.com/urmzd/meshgate/pkg/store"

	_ "github.com/urmzd/meshgate/docs"
)

// @title           Meshgate API
// @version         1.0
// @description     REST bridge between clients and a mesh network gateway

// @host      localhost:3001
// @BasePath  /api/v1
// @schemes   http https

const (
	forwardTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/meshgate/meshgate.db)")
	devicesPath := flag.String("devices", "config.json", "Path to the device document")
	eventLogPath := flag.String("eventlog", "log.txt", "Path to the gateway event log")
	seedPath := flag.String("seed", "", "YAML seed applied on first run")
	profileName := flag.String("profile", "", "Profile to activate, created from the seed if missing")
	mqttBroker := flag.String("mqtt", "", "MQTT broker URL for state notifications (e.g. tcp://localhost:1883)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := log.Info().
		Str("profile", cfg.Profile.Name).
		Str("timezone", cfg.Location().String()).
		Str("api_address", cfg.APIAddress())
	if cfg.Gateway != nil {
		logger = logger.
			Str("gateway", cfg.Gateway.BaseURL()).
			Str("match_by", cfg.Gateway.MatchBy)
	}
	logger.Msg("Configuration loaded")

	devices := store.New(*devicesPath, store.DefaultOptions())

	eventLog, err := gateway.OpenEventLog(*eventLogPath, cfg.Location())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open event log")
	}
	defer func() {
		if err := eventLog.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event log")
		}
	}()

	// Publish state changes over MQTT when a broker is configured; fall back to NullNotifier
	var notifier device.StateNotifier = device.NewNullNotifier()
	if *mqttBroker != "" {
		publisher, err := notify.Connect(*mqttBroker, "meshgate-"+cfg.Profile.Name)
		if err != nil {
			log.Warn().Err(err).Str("broker", *mqttBroker).Msg("MQTT broker unavailable, state notifications disabled")
		} else {
			defer publisher.Close()
			notifier = publisher
		}
	}

	bridge := gateway.NewBridge(database, devices, eventLog, notifier, gateway.BridgeConfig{})
	bridgeDone := make(chan struct{})
	go func() {
		defer close(bridgeDone)
		bridge.Run(ctx)
	}()

	router := api.NewRouter(api.Deps{
		Store:        devices,
		Commander:    gateway.NewForwarder(database, forwardTimeout),
		Link:         bridge,
		Gateways:     database,
		Validator:    schema.NewValidator(),
		EventLogPath: eventLog.Path(),
	})

	srv := &http.Server{
		Addr:              cfg.APIAddress(),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", srv.Addr).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down API server")
	}
	<-bridgeDone
}
