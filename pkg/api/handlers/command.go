package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/meshgate/pkg/api/types"
	"github.com/urmzd/meshgate/pkg/device"
)

// CommandHandler relays client commands to the gateway
type CommandHandler struct {
	commander device.Commander
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(commander device.Commander) *CommandHandler {
	return &CommandHandler{commander: commander}
}

// Command handles POST /command
// @Summary      Send node command
// @Description  Forwards an action to the gateway unchanged. A gateway rejection is returned with the gateway's own status and body.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body      types.CommandRequest  true  "Node and action"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      502      {object}  types.ErrorResponse  "Gateway unreachable"
// @Router       /command [post]
func (h *CommandHandler) Command(c *gin.Context) {
	var req types.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Body must be {\"nodeID\": string, \"action\": string}")
		return
	}

	if !h.send(c, req.NodeID, req.Action) {
		return
	}

	c.JSON(http.StatusOK, types.CommandResponse{
		Message: "Command sent successfully",
		NodeID:  req.NodeID,
		Action:  req.Action,
	})
}

// Blinds handles POST /blinds
// @Summary      Move blind
// @Description  Sends open, close or stop to a blind node
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body      types.BlindsRequest  true  "Blind node and action"
// @Success      200      {object}  types.MessageResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid action"
// @Failure      502      {object}  types.ErrorResponse  "Gateway unreachable"
// @Router       /blinds [post]
func (h *CommandHandler) Blinds(c *gin.Context) {
	var req types.BlindsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Body must be {\"node\": string, \"action\": string}")
		return
	}

	switch req.Action {
	case device.ActionOpen, device.ActionClose, device.ActionStop:
	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_action",
			Message: fmt.Sprintf("Invalid action %q, expected open, close or stop", req.Action),
		})
		return
	}

	if !h.send(c, req.Node, req.Action) {
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{
		Message: fmt.Sprintf("Action %s for slot %s executed successfully", req.Action, req.Node),
	})
}

// send forwards one command and writes the failure response itself. It reports
// whether the gateway accepted the command.
func (h *CommandHandler) send(c *gin.Context, nodeID, action string) bool {
	res, err := h.commander.Send(c.Request.Context(), nodeID, action)
	if err != nil {
		writeError(c, err)
		return false
	}
	if !res.OK {
		c.Data(res.StatusCode, "text/plain; charset=utf-8", []byte(res.Body))
		return false
	}
	return true
}

// Nodes handles GET /nodes
// @Summary      List mesh nodes
// @Description  Returns the node list reported by the gateway
// @Tags         commands
// @Produce      json
// @Success      200  {object}  types.NodesResponse
// @Failure      502  {object}  types.ErrorResponse  "Gateway unreachable"
// @Router       /nodes [get]
func (h *CommandHandler) Nodes(c *gin.Context) {
	list, err := h.commander.Nodes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NodesResponse{Success: true, List: list})
}
