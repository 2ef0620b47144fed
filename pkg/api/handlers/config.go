package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/meshgate/pkg/api/types"
	"github.com/urmzd/meshgate/pkg/device"
	"github.com/urmzd/meshgate/pkg/device/schema"
)

// ConfigHandler serves the device document
type ConfigHandler struct {
	store     device.Store
	validator *schema.Validator
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(store device.Store, validator *schema.Validator) *ConfigHandler {
	return &ConfigHandler{store: store, validator: validator}
}

// GetConfig handles GET /config
// @Summary      Get device document
// @Description  Returns the persisted device document exactly as stored, keyed by slot id
// @Tags         config
// @Produce      json
// @Success      200  {object}  map[string]object
// @Failure      500  {object}  types.ErrorResponse  "Storage error"
// @Router       /config [get]
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	data, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// SetSlotState handles POST /config
// @Summary      Set slot state
// @Description  Sets isOn for the record stored under the given slot id
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      types.SetSlotStateRequest  true  "Slot and state"
// @Success      200      {object}  types.MessageResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Slot not found"
// @Failure      503      {object}  types.ErrorResponse  "Document lock busy"
// @Failure      500      {object}  types.ErrorResponse  "Storage error"
// @Router       /config [post]
func (h *ConfigHandler) SetSlotState(c *gin.Context) {
	var req types.SetSlotStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Body must be {\"slot\": string, \"isOn\": boolean}")
		return
	}

	if err := h.store.SetSlotState(c.Request.Context(), req.Slot, *req.IsOn); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Hotspot config updated successfully"})
}

// SetNodeState handles POST /config/lights
// @Summary      Set node state
// @Description  Sets isOn for the first record (by slot number) whose nodeID matches
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      types.SetNodeStateRequest  true  "Node and state"
// @Success      200      {object}  types.MessageResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Node not found"
// @Failure      503      {object}  types.ErrorResponse  "Document lock busy"
// @Router       /config/lights [post]
func (h *ConfigHandler) SetNodeState(c *gin.Context) {
	var req types.SetNodeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Body must be {\"nodeID\": string, \"isOn\": boolean}")
		return
	}

	if err := h.store.SetNodeState(c.Request.Context(), req.NodeID, *req.IsOn); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Light state updated successfully"})
}

// CreateDevice handles POST /config/devices
// @Summary      Add device record
// @Description  Stores a new record under the next free slot id. Fields besides nodeID and isOn are kept as metadata.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "Device record"
// @Success      201      {object}  types.CreateDeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid record"
// @Failure      503      {object}  types.ErrorResponse  "Document lock busy"
// @Failure      500      {object}  types.ErrorResponse  "Storage error"
// @Router       /config/devices [post]
func (h *ConfigHandler) CreateDevice(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Could not read request body")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		badRequest(c, "Body must be a JSON object")
		return
	}
	if err := h.validator.ValidateRecord(payload); err != nil {
		writeError(c, err)
		return
	}

	var rec device.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.store.Create(c.Request.Context(), &rec)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.CreateDeviceResponse{
		Message: "Hotspot added successfully",
		ID:      id,
	})
}

// ListDevices handles GET /devices
// @Summary      List device records
// @Description  Returns every record ordered by slot number
// @Tags         config
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      500  {object}  types.ErrorResponse  "Storage error"
// @Router       /devices [get]
func (h *ConfigHandler) ListDevices(c *gin.Context) {
	doc, err := h.store.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]types.DeviceItem, 0, len(doc))
	for _, id := range doc.SortedIDs() {
		rec := doc[id]
		if rec == nil {
			continue
		}
		items = append(items, types.DeviceItem{
			ID:       id,
			NodeID:   rec.NodeID,
			IsOn:     rec.IsOn,
			Metadata: rec.Extra,
		})
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: items,
		Count:   len(items),
	})
}
