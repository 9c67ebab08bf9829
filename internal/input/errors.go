package input

import "codeberg.org/evhjem/hubdrive/internal/errors"

const (
	ErrNoDevice   = errors.ErrorCode("input_no_device_found")
	ErrOpenDevice = errors.ErrorCode("input_open_device_failed")
	ErrReadEvent  = errors.ErrorCode("input_read_event_failed")
)
