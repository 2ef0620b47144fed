package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/api/types"
	"github.com/urmzd/meshgate/pkg/db"
)

// GatewaySettings reads and replaces the active gateway configuration
type GatewaySettings interface {
	ActiveGateway(ctx context.Context) (*db.Gateway, error)
	UpdateGateway(ctx context.Context, g *db.Gateway) error
}

// GatewayHandler exposes the gateway connection settings
type GatewayHandler struct {
	settings GatewaySettings
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(settings GatewaySettings) *GatewayHandler {
	return &GatewayHandler{settings: settings}
}

// GetGateway handles GET /gateway
// @Summary      Get gateway settings
// @Description  Returns the active gateway settings. The token is reported only as set or unset.
// @Tags         gateway
// @Produce      json
// @Success      200  {object}  types.GatewayResponse
// @Failure      404  {object}  types.ErrorResponse  "No gateway configured"
// @Router       /gateway [get]
func (h *GatewayHandler) GetGateway(c *gin.Context) {
	g, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gatewayResponse(g))
}

// UpdateGateway handles PUT /gateway
// @Summary      Update gateway settings
// @Description  Changes the active gateway settings. Commands use them at once; the event stream picks them up on its next reconnect.
// @Tags         gateway
// @Accept       json
// @Produce      json
// @Param        request  body      types.UpdateGatewayRequest  true  "Fields to change"
// @Success      200      {object}  types.GatewayResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid settings"
// @Failure      404      {object}  types.ErrorResponse  "No gateway configured"
// @Router       /gateway [put]
func (h *GatewayHandler) UpdateGateway(c *gin.Context) {
	var req types.UpdateGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	g, ok := h.load(c)
	if !ok {
		return
	}

	if req.RootAddress != nil {
		g.RootAddress = *req.RootAddress
	}
	if req.StreamURL != nil {
		g.StreamURL = *req.StreamURL
	}
	if req.Token != nil {
		g.Token = *req.Token
	}
	if req.MatchBy != nil {
		g.MatchBy = *req.MatchBy
	}
	if req.ReconnectDelayMs != nil {
		g.ReconnectDelay = time.Duration(*req.ReconnectDelayMs) * time.Millisecond
	}

	if err := g.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.settings.UpdateGateway(c.Request.Context(), g); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "config_error",
			Message: err.Error(),
		})
		return
	}

	log.Info().Str("root", g.BaseURL()).Str("match_by", g.MatchBy).Msg("Gateway settings updated")
	c.JSON(http.StatusOK, gatewayResponse(g))
}

func (h *GatewayHandler) load(c *gin.Context) (*db.Gateway, bool) {
	g, err := h.settings.ActiveGateway(c.Request.Context())
	if errors.Is(err, db.ErrGatewayNotFound) || errors.Is(err, db.ErrNoActiveProfile) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "config_error",
			Message: err.Error(),
		})
		return nil, false
	}
	return g, true
}

func gatewayResponse(g *db.Gateway) types.GatewayResponse {
	return types.GatewayResponse{
		RootAddress:      g.RootAddress,
		StreamURL:        g.StreamURL,
		EventStreamURL:   g.EventStreamURL(),
		TokenSet:         g.Token != "",
		MatchBy:          g.MatchBy,
		ReconnectDelayMs: g.ReconnectDelay.Milliseconds(),
		UpdatedAt:        g.UpdatedAt,
	}
}
