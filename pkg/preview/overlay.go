// Package preview renders tracking results on top of video frames, either in
// a desktop window or as JPEG frames for the dashboard.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/teslashibe/go-dwell/pkg/tracking"
	"gocv.io/x/gocv"
)

var (
	contourColor = color.RGBA{0, 255, 0, 0}
	zoneColor    = color.RGBA{100, 100, 100, 0}
	insideColor  = color.RGBA{0, 0, 255, 0} // Blue: nose in the zone
	outsideColor = color.RGBA{255, 0, 0, 0} // Red
	textColor    = color.RGBA{255, 255, 255, 0}
)

const (
	noseRadius     = 2
	contourEpsilon = 0.01 // Fraction of perimeter used to simplify outlines
)

// Overlay draws the zone, the outlines of qualifying regions and the
// stabilized nose points onto a frame.
type Overlay struct {
	Zone     tracking.Zone
	Contours bool // Draw simplified region outlines
}

// Draw annotates img in place. status is printed in the top-left corner when
// non-empty.
func (o Overlay) Draw(img *gocv.Mat, frame tracking.Frame, obs []tracking.Observation, status string) {
	gocv.Circle(img, o.Zone.Center.Image(), int(o.Zone.Radius), zoneColor, -1)

	if o.Contours {
		drawOutlines(img, frame, obs)
	}

	for _, ob := range obs {
		c := outsideColor
		if ob.InZone {
			c = insideColor
		}
		gocv.Circle(img, ob.Stabilized.Image(), noseRadius, c, -1)
	}

	if status != "" {
		gocv.PutText(img, status, image.Pt(5, 15), gocv.FontHersheySimplex, 0.4, textColor, 1)
	}
}

func drawOutlines(img *gocv.Mat, frame tracking.Frame, obs []tracking.Observation) {
	outlines := gocv.NewPointsVector()
	defer outlines.Close()

	for _, ob := range obs {
		if ob.RegionIndex < 0 || ob.RegionIndex >= len(frame.Regions) {
			continue
		}
		contour := frame.Regions[ob.RegionIndex].Contour
		if len(contour) == 0 {
			continue
		}

		pts := make([]image.Point, len(contour))
		for i, p := range contour {
			pts[i] = p.Image()
		}
		pv := gocv.NewPointVectorFromPoints(pts)
		approx := gocv.ApproxPolyDP(pv, contourEpsilon*gocv.ArcLength(pv, true), true)
		outlines.Append(approx)
		approx.Close()
		pv.Close()
	}

	if outlines.Size() > 0 {
		gocv.DrawContours(img, outlines, -1, contourColor, 2)
	}
}

// Status formats the running totals of a session for display.
func Status(sess *tracking.Session) string {
	if r, err := sess.Result(); err == nil {
		return fmt.Sprintf("frame %d  dwell %.2fs", r.Frames, r.Seconds)
	}
	return fmt.Sprintf("frame %d  dwell %d frames", sess.Frames(), sess.DwellCount())
}
