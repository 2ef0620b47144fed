package device

import "errors"

var (
	// ErrNotFound indicates no record matched the requested slot id or node id
	ErrNotFound = errors.New("device not found")

	// ErrStorageUnavailable indicates the device document could not be read, parsed or written
	ErrStorageUnavailable = errors.New("device storage unavailable")

	// ErrLockTimeout indicates the device document lock could not be acquired within its retry budget
	ErrLockTimeout = errors.New("device storage lock timeout")

	// ErrForwardingFailed indicates the gateway could not be reached for a command
	ErrForwardingFailed = errors.New("command forwarding failed")

	// ErrConnectionLost indicates the gateway event stream dropped
	ErrConnectionLost = errors.New("gateway connection lost")

	// ErrNotConfigured indicates no gateway settings are available
	ErrNotConfigured = errors.New("gateway not configured")

	// ErrValidation indicates a payload failed schema validation
	ErrValidation = errors.New("validation error")
)
