package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrGatewayNotFound = errors.New("gateway config not found")

// Ways of resolving the first field of a light report to a device record.
const (
	MatchByNode = "node"
	MatchBySlot = "slot"
)

// DefaultReconnectDelay is the pause between event stream connection attempts.
const DefaultReconnectDelay = 2 * time.Second

// Gateway is the mesh root node a profile bridges to.
type Gateway struct {
	ID             int64
	ProfileID      int64
	RootAddress    string
	StreamURL      string
	Token          string
	MatchBy        string
	ReconnectDelay time.Duration
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BaseURL returns the root address as an http URL without a trailing slash.
func (g *Gateway) BaseURL() string {
	addr := strings.TrimRight(strings.TrimSpace(g.RootAddress), "/")
	if addr == "" {
		return ""
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return addr
}

// EventStreamURL returns StreamURL, or ws://<root host>/ws when it is unset.
func (g *Gateway) EventStreamURL() string {
	if g.StreamURL != "" {
		return g.StreamURL
	}
	base := g.BaseURL()
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	u.Scheme = "ws"
	if strings.HasPrefix(base, "https://") {
		u.Scheme = "wss"
	}
	u.Path = "/ws"
	return u.String()
}

// Validate checks the fields an operator can set.
func (g *Gateway) Validate() error {
	switch g.MatchBy {
	case MatchByNode, MatchBySlot:
	default:
		return fmt.Errorf("match_by must be %q or %q, got %q", MatchByNode, MatchBySlot, g.MatchBy)
	}
	if g.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect delay must be positive, got %s", g.ReconnectDelay)
	}
	if g.RootAddress != "" {
		if _, err := url.Parse(g.BaseURL()); err != nil {
			return fmt.Errorf("root address: %w", err)
		}
	}
	if g.StreamURL != "" {
		u, err := url.Parse(g.StreamURL)
		if err != nil {
			return fmt.Errorf("stream url: %w", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("stream url must use ws or wss, got %q", u.Scheme)
		}
	}
	return nil
}

// GatewayStore provides gateway config operations.
type GatewayStore interface {
	Get(ctx context.Context, profileID int64) (*Gateway, error)
	Upsert(ctx context.Context, g *Gateway) error
}

// Gateways returns a GatewayStore for this database.
func (db *DB) Gateways() GatewayStore {
	return &gatewayStore{db: db}
}

type gatewayStore struct {
	db *DB
}

func (s *gatewayStore) Get(ctx context.Context, profileID int64) (*Gateway, error) {
	g := &Gateway{}
	var delayMs int64
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, root_address, stream_url, token, match_by, reconnect_delay_ms, created_at, updated_at
		FROM gateways WHERE profile_id = ?
	`, profileID).Scan(&g.ID, &g.ProfileID, &g.RootAddress, &g.StreamURL, &g.Token, &g.MatchBy, &delayMs, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGatewayNotFound
	}
	if err != nil {
		return nil, err
	}
	g.ReconnectDelay = time.Duration(delayMs) * time.Millisecond
	g.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	g.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return g, nil
}

// Upsert writes g as the gateway of g.ProfileID, replacing any existing row.
func (s *gatewayStore) Upsert(ctx context.Context, g *Gateway) error {
	if g.MatchBy == "" {
		g.MatchBy = MatchByNode
	}
	if g.ReconnectDelay == 0 {
		g.ReconnectDelay = DefaultReconnectDelay
	}
	if err := g.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gateways (profile_id, root_address, stream_url, token, match_by, reconnect_delay_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			root_address = excluded.root_address,
			stream_url = excluded.stream_url,
			token = excluded.token,
			match_by = excluded.match_by,
			reconnect_delay_ms = excluded.reconnect_delay_ms,
			updated_at = datetime('now')
	`, g.ProfileID, g.RootAddress, g.StreamURL, g.Token, g.MatchBy, g.ReconnectDelay.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to save gateway config: %w", err)
	}

	saved, err := s.Get(ctx, g.ProfileID)
	if err != nil {
		return err
	}
	*g = *saved
	return nil
}
