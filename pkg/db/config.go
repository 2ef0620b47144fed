package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config represents the complete runtime configuration loaded from the database.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
	Gateway   *Gateway
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return fmt.Sprintf("0.0.0.0:%d", DefaultAPIPort)
	}
	return c.APIServer.Address()
}

// Location returns the profile timezone.
func (c *Config) Location() *time.Location {
	return c.Profile.Location()
}

// ActiveConfig loads the complete configuration for the active profile.
// A profile without an API server or gateway row yields nil for that part.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.activeProfile(ctx)
	if err != nil {
		return nil, err
	}

	config := &Config{Profile: profile}

	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	gateway, err := db.Gateways().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrGatewayNotFound) {
		return nil, fmt.Errorf("failed to get gateway config: %w", err)
	}
	config.Gateway = gateway

	return config, nil
}

// ActiveGateway returns the gateway of the active profile. It is read on every call
// so edits made through the API take effect without a restart.
func (db *DB) ActiveGateway(ctx context.Context) (*Gateway, error) {
	profile, err := db.activeProfile(ctx)
	if err != nil {
		return nil, err
	}
	return db.Gateways().Get(ctx, profile.ID)
}

// UpdateGateway stores g as the active profile's gateway.
func (db *DB) UpdateGateway(ctx context.Context, g *Gateway) error {
	profile, err := db.activeProfile(ctx)
	if err != nil {
		return err
	}
	g.ProfileID = profile.ID
	return db.Gateways().Upsert(ctx, g)
}

func (db *DB) activeProfile(ctx context.Context) (*Profile, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, ErrNoActiveProfile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return profile, nil
}
