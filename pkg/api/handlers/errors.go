package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/meshgate/pkg/api/types"
	"github.com/urmzd/meshgate/pkg/device"
)

// writeError maps a store or forwarder error onto the API error contract.
func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"

	switch {
	case errors.Is(err, device.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, device.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, device.ErrLockTimeout):
		status, code = http.StatusServiceUnavailable, "lock_timeout"
	case errors.Is(err, device.ErrStorageUnavailable):
		status, code = http.StatusInternalServerError, "storage_error"
	case errors.Is(err, device.ErrForwardingFailed):
		status, code = http.StatusBadGateway, "forwarding_failed"
	}

	c.JSON(status, types.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}
