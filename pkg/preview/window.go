package preview

import (
	"github.com/teslashibe/go-dwell/pkg/tracking"
	"gocv.io/x/gocv"
)

// FrameProvider exposes the frame that was just decoded.
// video.Source implements it.
type FrameProvider interface {
	Current() gocv.Mat
}

// Window shows annotated frames in a desktop window. Pressing q stops the
// run. It implements tracking.Observer and must be used from the goroutine
// that created it.
type Window struct {
	win     *gocv.Window
	src     FrameProvider
	overlay Overlay
	canvas  gocv.Mat
}

// NewWindow opens a window titled title that displays frames from src.
func NewWindow(title string, src FrameProvider, overlay Overlay) *Window {
	return &Window{
		win:     gocv.NewWindow(title),
		src:     src,
		overlay: overlay,
		canvas:  gocv.NewMat(),
	}
}

// ObserveFrame implements tracking.Observer.
func (w *Window) ObserveFrame(frame tracking.Frame, obs []tracking.Observation, sess *tracking.Session) error {
	cur := w.src.Current()
	if cur.Empty() {
		return nil
	}

	cur.CopyTo(&w.canvas)
	w.overlay.Draw(&w.canvas, frame, obs, Status(sess))
	w.win.IMShow(w.canvas)

	if w.win.WaitKey(1)&0xFF == 'q' {
		return tracking.ErrStopped
	}
	return nil
}

// Close destroys the window.
func (w *Window) Close() error {
	w.canvas.Close()
	return w.win.Close()
}
