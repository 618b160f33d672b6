package tracking

import (
	"fmt"
	"math"

	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"github.com/teslashibe/go-dwell/pkg/tracking/nose"
)

// Config holds all tunable parameters for one dwell measurement run
type Config struct {
	// Zone of interest
	Zone Zone

	// Region filter (exclusive bounds, square pixels)
	MinArea float64
	MaxArea float64

	// Smoother band (pixels). Jumps inside [MinDistance, MaxDistance] are suppressed.
	MinDistance float64
	MaxDistance float64

	// Nose estimation strategy name, see nose.New
	Strategy string

	// DwellPerFrame counts a frame at most once even when several regions
	// land in the zone. Off by default, which counts every qualifying region.
	DwellPerFrame bool

	// Progress logging cadence in frames (0 disables)
	ProgressEvery int
}

// DefaultConfig returns the configuration used for the cropped enclosure videos
func DefaultConfig() Config {
	return Config{
		Zone: Zone{
			Center: geometry.Pt(155, 175), // Object being sniffed
			Radius: 20,
		},

		MinArea: detection.DefaultMinArea,
		MaxArea: detection.DefaultMaxArea,

		MinDistance: 20,
		MaxDistance: 40,

		Strategy: nose.StrategyExtremum,

		ProgressEvery: 100,
	}
}

// LargeAnimalConfig returns a configuration for rats or closer cameras
func LargeAnimalConfig() Config {
	cfg := DefaultConfig()
	cfg.MinArea = 800
	cfg.MaxArea = 2500
	cfg.MinDistance = 40
	cfg.MaxDistance = 80
	cfg.Zone.Radius = 35
	return cfg
}

// AreaFilter returns the region filter described by the config.
func (c Config) AreaFilter() detection.AreaFilter {
	return detection.AreaFilter{Min: c.MinArea, Max: c.MaxArea}
}

// Validate checks that the configuration describes a usable run.
func (c Config) Validate() error {
	switch {
	case !finite(c.Zone.Center.X) || !finite(c.Zone.Center.Y):
		return fmt.Errorf("%w: zone center %v", ErrInvalidConfig, c.Zone.Center)
	case !finite(c.Zone.Radius) || c.Zone.Radius <= 0:
		return fmt.Errorf("%w: zone radius %v must be positive", ErrInvalidConfig, c.Zone.Radius)
	case !finite(c.MinArea) || !finite(c.MaxArea) || c.MinArea < 0 || c.MinArea >= c.MaxArea:
		return fmt.Errorf("%w: area bounds (%v, %v)", ErrInvalidConfig, c.MinArea, c.MaxArea)
	case !finite(c.MinDistance) || !finite(c.MaxDistance) || c.MinDistance < 0 || c.MinDistance > c.MaxDistance:
		return fmt.Errorf("%w: distance band [%v, %v]", ErrInvalidConfig, c.MinDistance, c.MaxDistance)
	case c.ProgressEvery < 0:
		return fmt.Errorf("%w: progress interval %d", ErrInvalidConfig, c.ProgressEvery)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
