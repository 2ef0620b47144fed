package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/meshgate/pkg/api/types"
)

// LogsHandler serves the gateway event log
type LogsHandler struct {
	path string
}

// NewLogsHandler creates a new logs handler for the log file at path
func NewLogsHandler(path string) *LogsHandler {
	return &LogsHandler{path: path}
}

// Download handles GET /logs
// @Summary      Download event log
// @Description  Returns every record received from the gateway, one timestamped line each
// @Tags         logs
// @Produce      plain
// @Success      200  {file}    file
// @Failure      404  {object}  types.ErrorResponse  "Nothing logged yet"
// @Failure      500  {object}  types.ErrorResponse  "Log unreadable"
// @Router       /logs [get]
func (h *LogsHandler) Download(c *gin.Context) {
	info, err := os.Stat(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "No gateway events have been logged yet",
		})
		return
	}
	if err != nil || info.IsDir() {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "log_error",
			Message: "Error reading the log file",
		})
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.FileAttachment(h.path, "log.txt")
}
