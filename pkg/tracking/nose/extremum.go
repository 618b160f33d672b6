package nose

import (
	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
)

// Extremum picks the contour point farthest from the region's centroid.
// An elongated silhouette's most protruding point is taken as the nose.
type Extremum struct{}

// Name implements Estimator.
func (Extremum) Name() string { return StrategyExtremum }

// Estimate implements Estimator. prev is ignored.
func (Extremum) Estimate(cur detection.Region, _ *detection.Region) (geometry.Point, bool) {
	c, ok := cur.Moments().Centroid()
	if !ok || len(cur.Contour) == 0 {
		return geometry.Point{}, false
	}

	best := cur.Contour[0]
	bestDist := best.DistanceSq(c)
	for _, p := range cur.Contour[1:] {
		// Strict comparison keeps the first of equally distant points.
		if d := p.DistanceSq(c); d > bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}
