// Package nose estimates where the animal's nose is within one body region.
package nose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
)

// ErrUnknownStrategy is returned by New for an unrecognised strategy name.
var ErrUnknownStrategy = errors.New("nose: unknown strategy")

// Estimator produces a single nose candidate for a region.
type Estimator interface {
	// Estimate returns the nose candidate for cur. prev is the region that
	// came immediately before cur in the frame's candidate ordering, or nil.
	// ok is false when the region is degenerate and no estimate exists.
	Estimate(cur detection.Region, prev *detection.Region) (p geometry.Point, ok bool)

	// Name identifies the strategy in logs
	Name() string
}

// Strategy names accepted by New.
const (
	StrategyExtremum = "extremum"
	StrategyBox      = "box"
)

// New returns the estimator registered under name.
func New(name string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyExtremum:
		return Extremum{}, nil
	case StrategyBox:
		return BoxHeuristic{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
