package tracking

import (
	"fmt"

	"github.com/teslashibe/go-dwell/pkg/geometry"
)

// Zone is the circular area around the object of interest.
type Zone struct {
	Center geometry.Point
	Radius float64
}

// Contains reports whether p lies strictly inside the zone.
func (z Zone) Contains(p geometry.Point) bool {
	return p.Distance(z.Center) < z.Radius
}

// DwellCounter converts a count of in-zone observations to seconds.
// The count only grows.
type DwellCounter struct {
	count int
	fps   float64
}

// NewDwellCounter creates a counter for a stream at fps frames per second.
// The rate is validated when Seconds is called, not here.
func NewDwellCounter(fps float64) *DwellCounter {
	return &DwellCounter{fps: fps}
}

// Inc adds one observation.
func (c *DwellCounter) Inc() {
	c.count++
}

// Count returns the number of observations so far.
func (c *DwellCounter) Count() int {
	return c.count
}

// FPS returns the frame rate supplied at construction.
func (c *DwellCounter) FPS() float64 {
	return c.fps
}

// Seconds returns count / fps. It can be called at any point in a run.
func (c *DwellCounter) Seconds() (float64, error) {
	if !finite(c.fps) || c.fps <= 0 {
		return 0, fmt.Errorf("%w: %v fps", ErrInvalidFrameRate, c.fps)
	}
	return float64(c.count) / c.fps, nil
}

// ZoneAccumulator counts stabilised points that fall inside a zone.
type ZoneAccumulator struct {
	zone    Zone
	counter *DwellCounter
}

// NewZoneAccumulator creates an accumulator for zone at fps frames per second.
func NewZoneAccumulator(zone Zone, fps float64) *ZoneAccumulator {
	return &ZoneAccumulator{
		zone:    zone,
		counter: NewDwellCounter(fps),
	}
}

// Observe counts p if it lies inside the zone and reports whether it did.
func (a *ZoneAccumulator) Observe(p geometry.Point) bool {
	if !a.zone.Contains(p) {
		return false
	}
	a.counter.Inc()
	return true
}

// Zone returns the configured zone.
func (a *ZoneAccumulator) Zone() Zone {
	return a.zone
}

// Count returns the number of in-zone observations.
func (a *ZoneAccumulator) Count() int {
	return a.counter.Count()
}

// Seconds returns the dwell time so far.
func (a *ZoneAccumulator) Seconds() (float64, error) {
	return a.counter.Seconds()
}

// FPS returns the stream frame rate.
func (a *ZoneAccumulator) FPS() float64 {
	return a.counter.FPS()
}
