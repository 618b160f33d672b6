package tracking

import "errors"

var (
	// ErrInvalidFrameRate is returned when a duration is requested with a
	// frame rate that is zero, negative, NaN or infinite.
	ErrInvalidFrameRate = errors.New("tracking: invalid frame rate")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("tracking: invalid config")

	// ErrStopped is returned by an Observer to end a run early.
	// Run treats it as a normal stop and reports the partial result.
	ErrStopped = errors.New("tracking: stopped")
)
