package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "meshgate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func testSeed() *Seed {
	seed := DefaultSeed()
	seed.Timezone = "Asia/Jerusalem"
	seed.Gateway.RootAddress = "192.168.4.1"
	seed.Gateway.Token = "secret"
	return seed
}

func TestMigrate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	require.NoError(t, db.Migrate(ctx), "second migrate should be a no-op")
	version, err = db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestMigrateFromV1AddsGateway(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "old.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.apply(ctx, migrations[0]))
	profile := &Profile{Name: "home", Timezone: "UTC", IsActive: true}
	require.NoError(t, db.Profiles().Create(ctx, profile))

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Bootstrap(ctx, testSeed()))

	g, err := db.ActiveGateway(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, g.ProfileID)
	assert.Equal(t, "http://192.168.4.1", g.BaseURL())
}

func TestBootstrap(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	needs, err := db.NeedsBootstrap(ctx)
	require.NoError(t, err)
	assert.True(t, needs)

	require.NoError(t, db.Bootstrap(ctx, testSeed()))

	cfg, err := db.ActiveConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Profile.Name)
	assert.Equal(t, "Asia/Jerusalem", cfg.Profile.Timezone)
	assert.Equal(t, "0.0.0.0:3001", cfg.APIAddress())
	require.NotNil(t, cfg.Gateway)
	assert.Equal(t, "secret", cfg.Gateway.Token)
	assert.Equal(t, MatchByNode, cfg.Gateway.MatchBy)
	assert.Equal(t, 2*time.Second, cfg.Gateway.ReconnectDelay)

	// A second run must not duplicate or overwrite anything.
	other := testSeed()
	other.Gateway.Token = "changed"
	require.NoError(t, db.Bootstrap(ctx, other))
	g, err := db.ActiveGateway(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret", g.Token)
}

func TestActiveConfigWithoutProfile(t *testing.T) {
	db := openTestDB(t)

	_, err := db.ActiveConfig(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveProfile)

	_, err = db.ActiveGateway(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveProfile)
}

func TestUpdateGateway(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Bootstrap(ctx, testSeed()))

	g := &Gateway{
		RootAddress:    "https://mesh.local:8443/",
		Token:          "t2",
		MatchBy:        MatchBySlot,
		ReconnectDelay: 500 * time.Millisecond,
	}
	require.NoError(t, db.UpdateGateway(ctx, g))
	assert.NotZero(t, g.ID)

	got, err := db.ActiveGateway(ctx)
	require.NoError(t, err)
	assert.Equal(t, MatchBySlot, got.MatchBy)
	assert.Equal(t, 500*time.Millisecond, got.ReconnectDelay)
	assert.Equal(t, "https://mesh.local:8443", got.BaseURL())
	assert.Equal(t, "wss://mesh.local:8443/ws", got.EventStreamURL())

	bad := &Gateway{RootAddress: "x", MatchBy: "name", ReconnectDelay: time.Second}
	assert.Error(t, db.UpdateGateway(ctx, bad))
}

func TestSetActiveProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Bootstrap(ctx, testSeed()))

	lab := &Profile{Name: "lab", Timezone: "UTC"}
	require.NoError(t, db.Profiles().Create(ctx, lab))
	require.NoError(t, db.Profiles().SetActive(ctx, lab.ID))

	active, err := db.Profiles().GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "lab", active.Name)

	_, err = db.ActiveGateway(ctx)
	assert.ErrorIs(t, err, ErrGatewayNotFound)

	assert.ErrorIs(t, db.Profiles().SetActive(ctx, 9999), ErrProfileNotFound)
}

func TestActivateProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed := testSeed()
	require.NoError(t, db.Bootstrap(ctx, seed))

	seed.Gateway.RootAddress = "10.0.0.9"
	lab, err := db.ActivateProfile(ctx, "lab", seed)
	require.NoError(t, err)
	assert.Equal(t, "lab", lab.Name)
	assert.True(t, lab.IsActive)

	cfg, err := db.ActiveConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "lab", cfg.Profile.Name)
	require.NotNil(t, cfg.APIServer)
	assert.Equal(t, DefaultAPIPort, cfg.APIServer.Port)
	require.NotNil(t, cfg.Gateway)
	assert.Equal(t, "http://10.0.0.9", cfg.Gateway.BaseURL())

	// Switching back keeps the first profile's own gateway.
	def, err := db.ActivateProfile(ctx, "default", seed)
	require.NoError(t, err)
	assert.Equal(t, "default", def.Name)

	gw, err := db.ActiveGateway(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.4.1", gw.BaseURL())

	active, err := db.Profiles().GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, def.ID, active.ID)
}

func TestGatewayURLs(t *testing.T) {
	tests := []struct {
		root, stream   string
		base, evstream string
	}{
		{"192.168.4.1", "", "http://192.168.4.1", "ws://192.168.4.1/ws"},
		{"http://10.0.0.2:80/", "", "http://10.0.0.2:80", "ws://10.0.0.2:80/ws"},
		{"10.0.0.2", "ws://10.0.0.2:81/events", "http://10.0.0.2", "ws://10.0.0.2:81/events"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		g := &Gateway{RootAddress: tt.root, StreamURL: tt.stream}
		assert.Equal(t, tt.base, g.BaseURL(), tt.root)
		assert.Equal(t, tt.evstream, g.EventStreamURL(), tt.root)
	}
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: flat
timezone: Europe/London
api:
  port: 4000
gateway:
  root_address: 192.168.4.1
  token: abc
  match_by: slot
  reconnect_delay: 750ms
`), 0o600))

	t.Setenv("MESHGATE_TOKEN", "from-env")
	t.Setenv("MESHGATE_PORT", "5000")

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "flat", seed.Profile)
	assert.Equal(t, "0.0.0.0", seed.API.Host, "defaults survive a partial file")
	assert.Equal(t, 5000, seed.API.Port)
	assert.Equal(t, "from-env", seed.Gateway.Token)

	g, err := seed.gateway(1)
	require.NoError(t, err)
	assert.Equal(t, MatchBySlot, g.MatchBy)
	assert.Equal(t, 750*time.Millisecond, g.ReconnectDelay)
}

func TestLoadSeedErrors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("MESHGATE_PORT", "not-a-port")
	_, err = LoadSeed("")
	assert.Error(t, err)
}
