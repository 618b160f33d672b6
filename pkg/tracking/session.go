package tracking

import (
	"log/slog"

	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"github.com/teslashibe/go-dwell/pkg/tracking/nose"
)

// Observation records what happened to one qualifying region.
type Observation struct {
	RegionIndex int            // Index in the frame's extractor order
	Candidate   geometry.Point // Raw nose estimate
	Stabilized  geometry.Point // Smoother output
	Accepted    bool           // Whether the candidate replaced the tracked point
	InZone      bool           // Whether Stabilized is inside the zone
}

// Result summarises a run, complete or partial.
type Result struct {
	Frames     int     `json:"frames"`
	DwellCount int     `json:"dwell_count"`
	FPS        float64 `json:"fps"`
	Seconds    float64 `json:"seconds"`
}

// Session owns the tracking state of one run: a single tracked nose and a
// single dwell counter. It is not safe for concurrent use.
type Session struct {
	config    Config
	filter    detection.AreaFilter
	estimator nose.Estimator
	smoother  *Smoother
	dwell     *ZoneAccumulator
	frames    int
	log       *slog.Logger
}

// NewSession validates cfg and creates the state for a stream at fps.
// fps itself is only checked when a duration is computed.
func NewSession(cfg Config, fps float64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	est, err := nose.New(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	return &Session{
		config:    cfg,
		filter:    cfg.AreaFilter(),
		estimator: est,
		smoother:  NewSmoother(cfg.MinDistance, cfg.MaxDistance),
		dwell:     NewZoneAccumulator(cfg.Zone, fps),
		log:       log.With("strategy", est.Name()),
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.config
}

// ProcessFrame runs filter, estimator, smoother and zone check over one
// frame's regions in extractor order.
//
// Tracking state advances once per qualifying region, so a frame with two
// animals-worth of regions moves the single tracked nose twice and may count
// twice unless DwellPerFrame is set.
func (s *Session) ProcessFrame(regions []detection.Region) []Observation {
	s.frames++

	var (
		obs     []Observation
		counted bool
	)
	for i := range regions {
		if !s.filter.Accept(regions[i]) {
			continue
		}

		var prev *detection.Region
		if i > 0 {
			prev = &regions[i-1]
		}

		candidate, ok := s.estimator.Estimate(regions[i], prev)
		if !ok {
			s.log.Debug("degenerate region skipped", "frame", s.frames-1, "region", i)
			continue
		}

		stabilized := s.smoother.Update(candidate)
		inZone := s.dwell.Zone().Contains(stabilized)
		if inZone && !(s.config.DwellPerFrame && counted) {
			s.dwell.Observe(stabilized)
			counted = true
		}

		obs = append(obs, Observation{
			RegionIndex: i,
			Candidate:   candidate,
			Stabilized:  stabilized,
			Accepted:    s.smoother.Accepted(),
			InZone:      inZone,
		})
	}
	return obs
}

// Nose returns the currently tracked nose point, if any.
func (s *Session) Nose() (geometry.Point, bool) {
	return s.smoother.Last()
}

// Frames returns the number of frames processed.
func (s *Session) Frames() int {
	return s.frames
}

// DwellCount returns the number of in-zone observations so far.
func (s *Session) DwellCount() int {
	return s.dwell.Count()
}

// Result returns the run summary so far. The error is ErrInvalidFrameRate
// when the stream's frame rate cannot produce a duration; the counts in the
// returned Result are still valid in that case.
func (s *Session) Result() (Result, error) {
	r := Result{
		Frames:     s.frames,
		DwellCount: s.dwell.Count(),
		FPS:        s.dwell.FPS(),
	}

	secs, err := s.dwell.Seconds()
	if err != nil {
		return r, err
	}
	r.Seconds = secs
	return r, nil
}
