package segment

import (
	"image"

	"github.com/teslashibe/go-dwell/pkg/geometry"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// openMask removes speckle from a binary mask in place.
func openMask(mask *gocv.Mat, kernel gocv.Mat) {
	gocv.MorphologyEx(*mask, mask, gocv.MorphOpen, kernel)
}

// newKernel builds the elliptical structuring element used for opening.
func newKernel(size int) gocv.Mat {
	return gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(size, size))
}

// regionsFromMask finds the external contours of a binary mask.
func regionsFromMask(mask gocv.Mat) []detection.Region {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]detection.Region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pv := contours.At(i)
		pts := pv.ToPoints()

		contour := make([]geometry.Point, len(pts))
		for j, p := range pts {
			contour[j] = geometry.FromImage(p)
		}

		regions = append(regions, detection.Region{
			Contour: contour,
			Area:    gocv.ContourArea(pv),
		})
	}
	return regions
}
