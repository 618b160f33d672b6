package preview

import (
	"errors"
	"fmt"

	"github.com/teslashibe/go-dwell/pkg/tracking"
	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when there is no frame to encode.
var ErrEmptyFrame = errors.New("preview: empty frame")

// Encoder annotates frames and encodes them as JPEG.
// It reuses one scratch Mat and is not safe for concurrent use.
type Encoder struct {
	overlay Overlay
	canvas  gocv.Mat
}

// NewEncoder creates an encoder that draws with overlay.
func NewEncoder(overlay Overlay) *Encoder {
	return &Encoder{overlay: overlay, canvas: gocv.NewMat()}
}

// Encode draws the overlay on a copy of img and returns it as JPEG.
// img itself is left untouched.
func (e *Encoder) Encode(img gocv.Mat, frame tracking.Frame, obs []tracking.Observation, status string) ([]byte, error) {
	if img.Empty() {
		return nil, ErrEmptyFrame
	}

	img.CopyTo(&e.canvas)
	e.overlay.Draw(&e.canvas, frame, obs, status)

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, e.canvas)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory that Close frees
	return append([]byte(nil), buf.GetBytes()...), nil
}

// Close releases the scratch buffer.
func (e *Encoder) Close() error {
	return e.canvas.Close()
}
