package preview

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

func blackFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 120, gocv.MatTypeCV8UC3)
}

// bgr returns the pixel at (x, y) as blue, green, red.
func bgr(img gocv.Mat, x, y int) (uint8, uint8, uint8) {
	v := img.GetVecbAt(y, x)
	return v[0], v[1], v[2]
}

func square() detection.Region {
	return detection.Region{
		Contour: []geometry.Point{
			geometry.Pt(60, 20), geometry.Pt(80, 20), geometry.Pt(80, 40), geometry.Pt(60, 40),
		},
		Area: 400,
	}
}

func TestOverlay_DrawsZoneAndNose(t *testing.T) {
	img := blackFrame()
	defer img.Close()

	o := Overlay{Zone: tracking.Zone{Center: geometry.Pt(30, 50), Radius: 10}}
	obs := []tracking.Observation{
		{Stabilized: geometry.Pt(30, 50), InZone: true},
		{Stabilized: geometry.Pt(100, 80), InZone: false},
	}
	o.Draw(&img, tracking.Frame{}, obs, "")

	tests := []struct {
		name    string
		x, y    int
		b, g, r uint8
	}{
		{"zone fill", 35, 50, 100, 100, 100},
		{"nose inside zone", 30, 50, 255, 0, 0},
		{"nose outside zone", 100, 80, 0, 0, 255},
		{"background", 5, 95, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, g, r := bgr(img, tt.x, tt.y)
			if b != tt.b || g != tt.g || r != tt.r {
				t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.x, tt.y, b, g, r, tt.b, tt.g, tt.r)
			}
		})
	}
}

func TestOverlay_DrawsOutlines(t *testing.T) {
	img := blackFrame()
	defer img.Close()

	o := Overlay{Zone: tracking.Zone{Center: geometry.Pt(10, 90), Radius: 3}, Contours: true}
	frame := tracking.Frame{Regions: []detection.Region{square()}}
	obs := []tracking.Observation{{RegionIndex: 0, Stabilized: geometry.Pt(60, 20)}}
	o.Draw(&img, frame, obs, "")

	if _, g, _ := bgr(img, 70, 40); g != 255 {
		t.Errorf("outline pixel green = %d, want 255", g)
	}
	if _, g, _ := bgr(img, 70, 30); g != 0 {
		t.Errorf("interior pixel green = %d, want 0", g)
	}
}

func TestOverlay_IgnoresStaleRegionIndex(t *testing.T) {
	img := blackFrame()
	defer img.Close()

	o := Overlay{Contours: true}
	obs := []tracking.Observation{{RegionIndex: 3}}
	o.Draw(&img, tracking.Frame{}, obs, "") // Must not panic
}

func TestStatus(t *testing.T) {
	sess, err := tracking.NewSession(tracking.DefaultConfig(), 10)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := Status(sess); !strings.Contains(got, "0.00s") {
		t.Errorf("Status() = %q, want seconds", got)
	}

	sess, err = tracking.NewSession(tracking.DefaultConfig(), 0)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := Status(sess); !strings.Contains(got, "0 frames") {
		t.Errorf("Status() with fps 0 = %q, want frame count", got)
	}
}

func TestEncoder(t *testing.T) {
	enc := NewEncoder(Overlay{Zone: tracking.Zone{Center: geometry.Pt(30, 50), Radius: 10}})
	defer enc.Close()

	img := blackFrame()
	defer img.Close()

	jpeg, err := enc.Encode(img, tracking.Frame{}, nil, "frame 0")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(jpeg, []byte{0xFF, 0xD8}) {
		t.Errorf("output does not start with a JPEG SOI marker")
	}

	// The source frame is not annotated
	if b, _, _ := bgr(img, 30, 50); b != 0 {
		t.Errorf("Encode modified its input")
	}
}

func TestEncoder_EmptyFrame(t *testing.T) {
	enc := NewEncoder(Overlay{})
	defer enc.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := enc.Encode(empty, tracking.Frame{}, nil, ""); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Encode(empty) error = %v, want ErrEmptyFrame", err)
	}
}

type matProvider struct{ mat gocv.Mat }

func (p matProvider) Current() gocv.Mat { return p.mat }

type recordingSink struct{ frames [][]byte }

func (s *recordingSink) SendCameraFrame(jpeg []byte) {
	s.frames = append(s.frames, jpeg)
}

func TestPublisher_Every(t *testing.T) {
	img := blackFrame()
	defer img.Close()

	sink := &recordingSink{}
	pub := NewPublisher(matProvider{img}, sink, Overlay{}, 2)
	defer pub.Close()

	sess, err := tracking.NewSession(tracking.DefaultConfig(), 10)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := pub.ObserveFrame(tracking.Frame{Index: i}, nil, sess); err != nil {
			t.Fatalf("ObserveFrame(%d): %v", i, err)
		}
	}

	if len(sink.frames) != 3 {
		t.Errorf("published %d frames, want 3", len(sink.frames))
	}
}

func TestPublisher_EmptyFrameIsNotFatal(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	sink := &recordingSink{}
	pub := NewPublisher(matProvider{empty}, sink, Overlay{}, 0)
	defer pub.Close()

	sess, _ := tracking.NewSession(tracking.DefaultConfig(), 10)
	if err := pub.ObserveFrame(tracking.Frame{}, nil, sess); err != nil {
		t.Errorf("ObserveFrame error = %v, want nil", err)
	}
	if len(sink.frames) != 0 {
		t.Errorf("published %d frames from an empty Mat", len(sink.frames))
	}
}

var (
	_ tracking.Observer = (*Window)(nil)
	_ tracking.Observer = (*Publisher)(nil)
)
