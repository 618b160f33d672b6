package segment

import (
	"sync"

	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// ThresholdExtractor segments a dark animal from a light floor by gray level.
type ThresholdExtractor struct {
	config detection.Config
	kernel gocv.Mat
	mu     sync.Mutex // Protects kernel
}

// NewThreshold creates a gray-level threshold extractor
func NewThreshold(cfg detection.Config) *ThresholdExtractor {
	return &ThresholdExtractor{
		config: cfg,
		kernel: newKernel(cfg.KernelSize),
	}
}

// Extract thresholds the frame, opens the mask and returns its outer contours.
func (e *ThresholdExtractor) Extract(frame gocv.Mat) ([]detection.Region, error) {
	if frame.Empty() {
		return nil, ErrEmptyFrame
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, e.config.Threshold, 255, gocv.ThresholdBinaryInv)

	openMask(&mask, e.kernel)

	regions := regionsFromMask(mask)
	log.Debug("threshold regions", "count", len(regions))
	return regions, nil
}

// Close releases the structuring element
func (e *ThresholdExtractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kernel.Close()
}
