package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
)

// Bootstrap fills an empty database from seed and makes sure the active profile has
// a gateway row. It is called after Migrate on every start; a populated database is
// left alone apart from that gateway check.
func (db *DB) Bootstrap(ctx context.Context, seed *Seed) error {
	if seed == nil {
		seed = DefaultSeed()
	}

	empty, err := db.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}

	if empty {
		if _, err := db.seedProfile(ctx, seed, seed.Profile, true); err != nil {
			return err
		}
	}

	profile, err := db.activeProfile(ctx)
	if err != nil {
		return err
	}
	return db.ensureGateway(ctx, profile, seed)
}

// ActivateProfile makes the profile called name the active one. A missing profile is
// created from seed, and like Bootstrap it is given a gateway row if it has none.
func (db *DB) ActivateProfile(ctx context.Context, name string, seed *Seed) (*Profile, error) {
	if seed == nil {
		seed = DefaultSeed()
	}

	profile, err := db.Profiles().GetByName(ctx, name)
	if errors.Is(err, ErrProfileNotFound) {
		profile, err = db.seedProfile(ctx, seed, name, false)
	}
	if err != nil {
		return nil, err
	}

	if !profile.IsActive {
		if err := db.Profiles().SetActive(ctx, profile.ID); err != nil {
			return nil, fmt.Errorf("failed to activate profile %q: %w", name, err)
		}
		profile.IsActive = true
		log.Info().Str("profile", name).Msg("Switched active profile")
	}

	if err := db.ensureGateway(ctx, profile, seed); err != nil {
		return nil, err
	}
	return profile, nil
}

func (db *DB) ensureGateway(ctx context.Context, profile *Profile, seed *Seed) error {
	_, err := db.Gateways().Get(ctx, profile.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrGatewayNotFound) {
		return fmt.Errorf("failed to check gateway config: %w", err)
	}

	g, err := seed.gateway(profile.ID)
	if err != nil {
		return err
	}
	if err := db.Gateways().Upsert(ctx, g); err != nil {
		return err
	}
	log.Info().Str("profile", profile.Name).Str("root", g.BaseURL()).Msg("Created gateway config")
	return nil
}

func (db *DB) seedProfile(ctx context.Context, seed *Seed, name string, active bool) (*Profile, error) {
	timezone := seed.Timezone
	if timezone == "" {
		timezone = detectTimezone()
	}
	if name == "" {
		name = "default"
	}

	profile := &Profile{Name: name, Timezone: timezone, IsActive: active}
	if err := db.Profiles().Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile %q: %w", name, err)
	}

	host, port := seed.API.Host, seed.API.Port
	if host == "" {
		host = "0.0.0.0"
	}
	if port == 0 {
		port = DefaultAPIPort
	}
	if err := db.APIServers().Create(ctx, &APIServer{ProfileID: profile.ID, Host: host, Port: port}); err != nil {
		return nil, fmt.Errorf("failed to create API server for %q: %w", name, err)
	}

	log.Info().Str("profile", name).Str("timezone", timezone).Msg("Created profile")
	return profile, nil
}

// detectTimezone attempts to detect the system timezone.
func detectTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}

	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("systemsetup", "-gettimezone").Output()
		if err == nil {
			if _, zone, ok := strings.Cut(string(out), ": "); ok {
				return strings.TrimSpace(zone)
			}
		}

	case "linux":
		out, err := exec.Command("timedatectl", "show", "--property=Timezone", "--value").Output()
		if err == nil && len(strings.TrimSpace(string(out))) > 0 {
			return strings.TrimSpace(string(out))
		}
		if data, err := os.ReadFile("/etc/timezone"); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	// Both platforms symlink /etc/localtime into a zoneinfo tree.
	if link, err := os.Readlink("/etc/localtime"); err == nil {
		if _, zone, ok := strings.Cut(link, "zoneinfo/"); ok {
			return zone
		}
	}

	return "UTC"
}

// NeedsBootstrap returns true if the database has no profiles yet.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
