package nose

import (
	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
)

// BoxHeuristic guesses the nose from bounding rectangles alone.
//
// It compares the current region with the one before it in the same frame's
// candidate list, which is positional rather than temporal continuity. When
// that previous box sits lower in the image the animal is assumed to be
// heading down the frame: a wide box puts the nose on its left edge, a tall
// box on its top edge. Everything else falls back to the box center.
type BoxHeuristic struct{}

// Name implements Estimator.
func (BoxHeuristic) Name() string { return StrategyBox }

// Estimate implements Estimator. Only an empty contour has no estimate.
func (BoxHeuristic) Estimate(cur detection.Region, prev *detection.Region) (geometry.Point, bool) {
	if len(cur.Contour) == 0 {
		return geometry.Point{}, false
	}

	box := cur.Bounds()
	if prev == nil {
		return box.Center(), true
	}

	if prevBox := prev.Bounds(); prevBox.Y > box.Y {
		if box.W > box.H {
			return box.LeftMiddle(), true
		}
		return box.TopMiddle(), true
	}
	return box.Center(), true
}
