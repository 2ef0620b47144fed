package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/device"
)

// Forwarder relays commands to the gateway's HTTP endpoints. It holds no state
// besides the HTTP client: the address and token are looked up on every call.
type Forwarder struct {
	resolver Resolver
	client   *resty.Client
}

var _ device.Commander = (*Forwarder)(nil)

// NewForwarder creates a Forwarder whose requests time out after timeout.
// Requests are never retried.
func NewForwarder(resolver Resolver, timeout time.Duration) *Forwarder {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{})

	return &Forwarder{
		resolver: resolver,
		client:   client,
	}
}

func (f *Forwarder) endpoint(ctx context.Context) (base, token string, err error) {
	gw, err := f.resolver.ActiveGateway(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", device.ErrForwardingFailed, err)
	}
	base = gw.BaseURL()
	if base == "" {
		return "", "", fmt.Errorf("%w: %w: root address", device.ErrForwardingFailed, device.ErrNotConfigured)
	}
	return base, gw.Token, nil
}

// Send issues GET <root>/comm?id=&act=&token=. A response that is not 2xx is returned
// as a non-OK result with its status and body; only transport failures are errors.
func (f *Forwarder) Send(ctx context.Context, nodeID, action string) (*device.CommandResult, error) {
	base, token, err := f.endpoint(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":    nodeID,
			"act":   action,
			"token": token,
		}).
		Get(base + "/comm")
	if err != nil {
		log.Error().Err(err).Str("nodeID", nodeID).Str("action", action).Msg("Command request failed")
		return nil, fmt.Errorf("%w: %w", device.ErrForwardingFailed, err)
	}

	log.Debug().
		Str("nodeID", nodeID).
		Str("action", action).
		Int("status", resp.StatusCode()).
		Dur("took", time.Since(start)).
		Msg("Command forwarded")

	if !resp.IsSuccess() {
		return &device.CommandResult{
			OK:         false,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}, nil
	}
	return &device.CommandResult{OK: true, StatusCode: resp.StatusCode()}, nil
}

// Nodes fetches GET <root>/getNodes and returns the JSON body unchanged.
func (f *Forwarder) Nodes(ctx context.Context) (json.RawMessage, error) {
	base, _, err := f.endpoint(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(base + "/getNodes")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrForwardingFailed, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: gateway answered %s", device.ErrForwardingFailed, resp.Status())
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: node list is not valid JSON", device.ErrForwardingFailed)
	}
	return json.RawMessage(body), nil
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	log.Error().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...any) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...any) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
