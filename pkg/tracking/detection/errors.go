package detection

import "errors"

var (
	// ErrUnknownExtractor is returned for an unrecognised backend name.
	ErrUnknownExtractor = errors.New("detection: unknown extractor")

	// ErrInvalidConfig is returned when preprocessing parameters are unusable.
	ErrInvalidConfig = errors.New("detection: invalid config")
)
