// Package detection holds the per-frame candidate regions and the settings
// used to find them. It is free of OpenCV; see package segment for the
// extractors that produce regions from video frames.
package detection

import (
	"fmt"
	"strings"

	"github.com/teslashibe/go-dwell/pkg/geometry"
)

// Region is one candidate body outline found in a single frame.
// Regions are produced fresh per frame and must not be retained.
type Region struct {
	Contour []geometry.Point // Boundary in extractor order
	Area    float64          // Enclosed area in pixels
}

// Bounds returns the upright bounding rectangle of the contour.
func (r Region) Bounds() geometry.Rect {
	return geometry.BoundingRect(r.Contour)
}

// Moments returns the polygon moments of the contour.
func (r Region) Moments() geometry.Moments {
	return geometry.PolygonMoments(r.Contour)
}

// Kind names an extraction backend.
type Kind string

const (
	KindThreshold  Kind = "threshold"  // Dark animal on a light floor
	KindBackground Kind = "background" // Moving animal against a static scene
)

// Config holds extractor configuration
type Config struct {
	Kind       Kind
	Threshold  float32 // Gray level below which a pixel is foreground (threshold kind)
	KernelSize int     // Elliptical opening kernel diameter in pixels
}

// DefaultConfig returns the preprocessing recipe used for the enclosure videos.
func DefaultConfig() Config {
	return Config{
		Kind:       KindThreshold,
		Threshold:  50,
		KernelSize: 5,
	}
}

// Validate checks the kind and kernel size.
func (c Config) Validate() error {
	if _, err := ParseKind(string(c.Kind)); err != nil {
		return err
	}
	if c.KernelSize <= 0 {
		return fmt.Errorf("%w: kernel size %d", ErrInvalidConfig, c.KernelSize)
	}
	return nil
}

// ParseKind resolves a backend name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindThreshold, KindBackground:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExtractor, name)
	}
}
