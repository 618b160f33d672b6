package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
)

// Frame is one decoded video frame reduced to its candidate regions.
type Frame struct {
	Index   int
	Regions []detection.Region
}

// FrameSource yields frames in order until io.EOF.
type FrameSource interface {
	// Next returns the next frame, or io.EOF once the stream is exhausted
	Next(ctx context.Context) (Frame, error)

	// FPS returns the stream frame rate
	FPS() float64

	// FrameCount returns the advertised number of frames, or 0 if unknown.
	// It is only used for progress reporting.
	FrameCount() int
}

// Observer is notified after each frame has been processed.
// Returning ErrStopped ends the run early with a valid partial result.
type Observer interface {
	ObserveFrame(frame Frame, obs []Observation, sess *Session) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(frame Frame, obs []Observation, sess *Session) error

// ObserveFrame implements Observer.
func (f ObserverFunc) ObserveFrame(frame Frame, obs []Observation, sess *Session) error {
	return f(frame, obs, sess)
}

// RunOption customises Run.
type RunOption func(*runOptions)

type runOptions struct {
	observers []Observer
}

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o Observer) RunOption {
	return func(ro *runOptions) {
		ro.observers = append(ro.observers, o)
	}
}

// Run drives sess with frames from src until the stream ends, ctx is
// cancelled, or an observer returns ErrStopped. All three are normal stops.
// The frame rate is validated once, when the final duration is computed.
func Run(ctx context.Context, src FrameSource, sess *Session, opts ...RunOption) (Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	total := src.FrameCount()
	every := sess.Config().ProgressEvery

	for {
		if ctx.Err() != nil {
			log.Info("run cancelled", "frames", sess.Frames())
			break
		}

		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Info("run cancelled", "frames", sess.Frames())
			break
		}
		if err != nil {
			r, _ := sess.Result()
			return r, fmt.Errorf("read frame %d: %w", sess.Frames(), err)
		}

		obs := sess.ProcessFrame(frame.Regions)

		if every > 0 && frame.Index%every == 0 {
			reportProgress(frame.Index, total)
		}

		stop, err := notify(ro.observers, frame, obs, sess)
		if err != nil {
			r, _ := sess.Result()
			return r, err
		}
		if stop {
			log.Info("run stopped by observer", "frames", sess.Frames())
			break
		}
	}

	return sess.Result()
}

func notify(observers []Observer, frame Frame, obs []Observation, sess *Session) (bool, error) {
	stop := false
	for _, o := range observers {
		err := o.ObserveFrame(frame, obs, sess)
		switch {
		case errors.Is(err, ErrStopped):
			stop = true
		case err != nil:
			return false, fmt.Errorf("observe frame %d: %w", frame.Index, err)
		}
	}
	return stop, nil
}

func reportProgress(index, total int) {
	if total <= 0 {
		log.Info("processed frame", "frame", index)
		return
	}
	pct := 100 * float64(index) / float64(total)
	log.Info(fmt.Sprintf("processed %d/%d frames (%.1f%%)", index, total, pct))
}
