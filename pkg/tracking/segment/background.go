package segment

import (
	"sync"

	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// BackgroundExtractor finds moving regions with a MOG2 background model.
// The model learns from every frame it sees, so one extractor serves one video.
type BackgroundExtractor struct {
	config     detection.Config
	subtractor gocv.BackgroundSubtractorMOG2
	kernel     gocv.Mat
	mu         sync.Mutex
}

// NewBackground creates a background subtraction extractor
func NewBackground(cfg detection.Config) *BackgroundExtractor {
	return &BackgroundExtractor{
		config:     cfg,
		subtractor: gocv.NewBackgroundSubtractorMOG2(),
		kernel:     newKernel(cfg.KernelSize),
	}
}

// Extract updates the background model and returns the foreground contours.
func (e *BackgroundExtractor) Extract(frame gocv.Mat) ([]detection.Region, error) {
	if frame.Empty() {
		return nil, ErrEmptyFrame
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	mask := gocv.NewMat()
	defer mask.Close()
	e.subtractor.Apply(frame, &mask)

	openMask(&mask, e.kernel)

	regions := regionsFromMask(mask)
	log.Debug("foreground regions", "count", len(regions))
	return regions, nil
}

// Close releases the background model
func (e *BackgroundExtractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.kernel.Close()
	return e.subtractor.Close()
}
