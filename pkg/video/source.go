// Package video reads enclosure footage with OpenCV and hands each frame's
// candidate regions to the tracking pipeline.
package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/tracking"
	"github.com/teslashibe/go-dwell/pkg/tracking/segment"
	"gocv.io/x/gocv"
)

// ErrOpen is returned when the video file or camera cannot be opened.
var ErrOpen = errors.New("video: cannot open source")

// Source decodes frames from a file or camera and extracts regions from each.
// It implements tracking.FrameSource. Not safe for concurrent use.
type Source struct {
	capture   *gocv.VideoCapture
	extractor segment.Extractor

	frame gocv.Mat // Most recently decoded frame
	index int
	fps   float64
	count int
}

// Open opens a video file, or a camera when path is a device number.
// The extractor is borrowed; the caller closes it.
func Open(path string, extractor segment.Extractor) (*Source, error) {
	var (
		capture *gocv.VideoCapture
		err     error
	)
	if _, statErr := os.Stat(path); statErr == nil {
		capture, err = gocv.VideoCaptureFile(path)
	} else if id, convErr := strconv.Atoi(path); convErr == nil {
		capture, err = gocv.VideoCaptureDevice(id)
	} else {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, statErr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s", ErrOpen, path)
	}

	s := &Source{
		capture:   capture,
		extractor: extractor,
		frame:     gocv.NewMat(),
		fps:       capture.Get(gocv.VideoCaptureFPS),
		count:     int(capture.Get(gocv.VideoCaptureFrameCount)),
	}
	if s.count < 0 {
		s.count = 0 // Live cameras report -1
	}

	log.Info("video opened", "path", path, "fps", s.fps, "frames", s.count)
	return s, nil
}

// Next decodes the next frame and extracts its regions.
// It returns io.EOF once the stream is exhausted.
func (s *Source) Next(ctx context.Context) (tracking.Frame, error) {
	if err := ctx.Err(); err != nil {
		return tracking.Frame{}, err
	}

	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		return tracking.Frame{}, io.EOF
	}

	regions, err := s.extractor.Extract(s.frame)
	if err != nil {
		return tracking.Frame{}, fmt.Errorf("extract regions: %w", err)
	}

	f := tracking.Frame{Index: s.index, Regions: regions}
	s.index++
	return f, nil
}

// FPS returns the frame rate reported by the container or camera.
func (s *Source) FPS() float64 {
	return s.fps
}

// FrameCount returns the advertised frame count, or 0 if unknown.
func (s *Source) FrameCount() int {
	return s.count
}

// Current returns the most recently decoded frame. The Mat is owned by the
// Source and is overwritten by the next call to Next.
func (s *Source) Current() gocv.Mat {
	return s.frame
}

// Close releases the capture device and frame buffer.
func (s *Source) Close() error {
	s.frame.Close()
	return s.capture.Close()
}
