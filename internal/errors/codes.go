package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrBindFlags     ErrorCode = "bind_flags_failed"
	ErrReadConfig    ErrorCode = "read_config_failed"
	ErrInvalidRate   ErrorCode = "invalid_poll_rate"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp       ErrorCode = "init_app_failed"
	ErrControlLoop   ErrorCode = "control_loop_failed"
	ErrNoController  ErrorCode = "no_controller_found"
	ErrHubConnect    ErrorCode = "hub_connect_failed"
	ErrHubCalibrate  ErrorCode = "hub_calibrate_failed"
	ErrHubWrite      ErrorCode = "hub_write_failed"
	ErrHubDisconnect ErrorCode = "hub_disconnect_failed"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"

	// Telemetry errors
	ErrInitTelemetry   ErrorCode = "init_telemetry_failed"
	ErrRecordTelemetry ErrorCode = "record_telemetry_failed"
	ErrCloseTelemetry  ErrorCode = "close_telemetry_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUnavailable:     "Service unavailable",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidRate:     "Invalid poll rate value",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrInitApp:         "Failed to initialize application",
	ErrControlLoop:     "Error in control loop",
	ErrNoController:    "No game controller detected",
	ErrHubConnect:      "Failed to connect to hub",
	ErrHubCalibrate:    "Failed to calibrate steering",
	ErrHubWrite:        "Failed to write drive command",
	ErrHubDisconnect:   "Failed to disconnect from hub",
	ErrOperationFailed: "Operation failed",
	ErrTimeout:         "Operation timed out",
	ErrInitTelemetry:   "Failed to initialize telemetry",
	ErrRecordTelemetry: "Failed to record telemetry data",
	ErrCloseTelemetry:  "Failed to close telemetry sink",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
