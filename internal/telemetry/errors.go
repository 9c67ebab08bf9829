package telemetry

import "codeberg.org/evhjem/hubdrive/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Collection Errors
	ErrInvalidSnapshot = errors.ErrorCode("telemetry_invalid_snapshot")
	ErrRecordFailed    = errors.ErrorCode("telemetry_record_failed")

	// Storage Errors
	ErrStorageInit   = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageAccess = errors.ErrorCode("telemetry_storage_access_failed")
	ErrStorageClose  = errors.ErrorCode("telemetry_storage_close_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
	ErrServiceShutdown  = errors.ErrorCode("telemetry_service_shutdown_failed")
)
