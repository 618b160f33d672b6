// Package segment finds candidate body regions in video frames with OpenCV.
package segment

import (
	"errors"
	"fmt"

	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when asked to extract from an empty Mat.
var ErrEmptyFrame = errors.New("segment: empty frame")

// Extractor is the interface for region extraction backends
type Extractor interface {
	// Extract finds candidate regions in a BGR frame
	Extract(frame gocv.Mat) ([]detection.Region, error)

	// Close releases resources
	Close() error
}

// New creates the extractor selected by cfg.Kind.
func New(cfg detection.Config) (Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case detection.KindThreshold:
		return NewThreshold(cfg), nil
	case detection.KindBackground:
		return NewBackground(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", detection.ErrUnknownExtractor, cfg.Kind)
	}
}
