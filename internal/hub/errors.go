package hub

import "codeberg.org/evhjem/hubdrive/internal/errors"

const (
	// Connection Errors
	ErrAdapterInit     = errors.ErrorCode("hub_adapter_init_failed")
	ErrScanFailed      = errors.ErrorCode("hub_scan_failed")
	ErrDeviceNotFound  = errors.ErrorCode("hub_device_not_found")
	ErrConnectFailed   = errors.ErrorCode("hub_connect_failed")
	ErrServiceDiscover = errors.ErrorCode("hub_service_discovery_failed")

	// Write Errors
	ErrWriteFailed  = errors.ErrorCode("hub_write_failed")
	ErrInvalidFrame = errors.ErrorCode("hub_invalid_frame")

	// Shutdown Errors
	ErrDisconnect = errors.ErrorCode("hub_disconnect_failed")
)
