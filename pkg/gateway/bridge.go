// Package gateway talks to the mesh root node: the Bridge consumes its event stream
// and the Forwarder relays client commands to it.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/db"
	"github.com/urmzd/meshgate/pkg/device"
)

// State is the event stream connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Resolver returns the gateway settings currently in force.
type Resolver interface {
	ActiveGateway(ctx context.Context) (*db.Gateway, error)
}

// BridgeConfig tunes the Bridge. Zero values take defaults.
type BridgeConfig struct {
	// HandshakeTimeout bounds one websocket dial.
	HandshakeTimeout time.Duration

	// IdleDelay is the wait used when no gateway is configured; otherwise the
	// gateway's own reconnect delay applies.
	IdleDelay time.Duration
}

// Bridge owns the single websocket connection to the gateway's event stream.
// It turns light reports into store updates and reconnects after a fixed delay
// for as long as Run's context lives.
type Bridge struct {
	resolver Resolver
	store    device.StateWriter
	recorder Recorder
	notifier device.StateNotifier
	cfg      BridgeConfig
	dialer   *websocket.Dialer

	state    atomic.Int32
	attempts atomic.Int64
}

var _ device.LinkMonitor = (*Bridge)(nil)

// NewBridge wires a Bridge. recorder and notifier may be nil.
func NewBridge(resolver Resolver, store device.StateWriter, recorder Recorder, notifier device.StateNotifier, cfg BridgeConfig) *Bridge {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if cfg.IdleDelay <= 0 {
		cfg.IdleDelay = db.DefaultReconnectDelay
	}
	if notifier == nil {
		notifier = device.NewNullNotifier()
	}

	return &Bridge{
		resolver: resolver,
		store:    store,
		recorder: recorder,
		notifier: notifier,
		cfg:      cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

// State returns the current connection state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

// IsConnected reports whether the event stream is up.
func (b *Bridge) IsConnected() bool {
	return b.State() == StateConnected
}

// Attempts returns how many connection attempts have been started.
func (b *Bridge) Attempts() int64 {
	return b.attempts.Load()
}

func (b *Bridge) setState(s State) {
	b.state.Store(int32(s))
}

// Run connects immediately and keeps reconnecting until ctx is cancelled.
// There is no attempt cap and no backoff growth.
func (b *Bridge) Run(ctx context.Context) {
	log.Info().Msg("Gateway bridge started")
	defer log.Info().Msg("Gateway bridge stopped")

	for {
		delay := b.cycle(ctx)
		b.setState(StateDisconnected)

		if ctx.Err() != nil {
			return
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// cycle runs one connection attempt to completion and returns the delay before the next.
func (b *Bridge) cycle(ctx context.Context) time.Duration {
	b.attempts.Add(1)
	b.setState(StateConnecting)

	gw, err := b.resolver.ActiveGateway(ctx)
	if err != nil {
		log.Warn().Err(err).Dur("retry_in", b.cfg.IdleDelay).Msg("No gateway configuration available")
		return b.cfg.IdleDelay
	}

	delay := gw.ReconnectDelay
	if delay <= 0 {
		delay = db.DefaultReconnectDelay
	}

	url := gw.EventStreamURL()
	if url == "" {
		log.Warn().Err(device.ErrNotConfigured).Dur("retry_in", delay).Msg("Gateway event stream address is not set")
		return delay
	}

	err = b.session(ctx, url, gw.MatchBy)
	if ctx.Err() == nil {
		log.Warn().Err(err).Str("url", url).Dur("retry_in", delay).Msg("Gateway event stream lost")
	}
	return delay
}

// session dials url and reads until the connection fails or ctx ends.
func (b *Bridge) session(ctx context.Context, url, matchBy string) error {
	dialCtx, cancel := context.WithTimeout(ctx, b.cfg.HandshakeTimeout)
	conn, _, err := b.dialer.DialContext(dialCtx, url, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("%w: dial: %w", device.ErrConnectionLost, err)
	}
	defer conn.Close()

	// Unblock ReadMessage on shutdown.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	b.setState(StateConnected)
	log.Info().Str("url", url).Str("match_by", matchBy).Msg("Gateway event stream connected")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: %w", device.ErrConnectionLost, err)
		}
		b.handleMessage(ctx, msg, matchBy)
	}
}

// handleMessage records every line of msg and applies the light reports among them.
func (b *Bridge) handleMessage(ctx context.Context, msg []byte, matchBy string) {
	for _, record := range SplitRecords(msg) {
		if b.recorder != nil {
			b.recorder.Append(record)
		}

		report, ok, tagged := ParseLightReport(record)
		if !ok {
			if tagged {
				log.Warn().Str("record", record).Msg("Dropping malformed light report")
			}
			continue
		}
		b.apply(ctx, report, matchBy)
	}
}

func (b *Bridge) apply(ctx context.Context, r LightReport, matchBy string) {
	var err error
	if matchBy == db.MatchBySlot {
		err = b.store.SetSlotState(ctx, r.NodeID, r.IsOn)
	} else {
		err = b.store.SetNodeState(ctx, r.NodeID, r.IsOn)
	}

	if err != nil {
		ev := log.Error()
		if errors.Is(err, device.ErrNotFound) {
			ev = log.Warn()
		}
		ev.Err(err).Str("nodeID", r.NodeID).Bool("isOn", r.IsOn).Msg("Light report not applied")
		return
	}

	b.notifier.NodeStateChanged(r.NodeID, r.IsOn)
}
