package tracking

import "github.com/teslashibe/go-dwell/pkg/geometry"

// Smoother stabilises nose candidates with a two-threshold distance band.
//
// Candidates closer than MinDistance to the last accepted point (the animal is
// effectively still) or farther than MaxDistance (an abrupt jump) replace it.
// Candidates in between are treated as jitter and the last accepted point is
// returned again. Once set, the last accepted point is never cleared.
type Smoother struct {
	minDistance float64
	maxDistance float64

	last     geometry.Point
	hasLast  bool
	accepted bool // Whether the most recent Update advanced
}

// NewSmoother creates a smoother with the given band.
func NewSmoother(minDistance, maxDistance float64) *Smoother {
	return &Smoother{
		minDistance: minDistance,
		maxDistance: maxDistance,
	}
}

// Update feeds one candidate and returns the stabilised point.
func (s *Smoother) Update(candidate geometry.Point) geometry.Point {
	if !s.hasLast {
		s.last, s.hasLast, s.accepted = candidate, true, true
		return candidate
	}

	d := candidate.Distance(s.last)
	s.accepted = d < s.minDistance || d > s.maxDistance
	if s.accepted {
		s.last = candidate
	}
	return s.last
}

// Last returns the last accepted point, if any.
func (s *Smoother) Last() (geometry.Point, bool) {
	return s.last, s.hasLast
}

// Accepted reports whether the most recent Update replaced the stored point.
func (s *Smoother) Accepted() bool {
	return s.accepted
}
