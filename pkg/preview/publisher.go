package preview

import (
	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/tracking"
)

// FrameSink receives encoded preview frames. web.Server implements it.
type FrameSink interface {
	SendCameraFrame(jpeg []byte)
}

// Publisher encodes every Nth annotated frame and hands it to a sink.
// It implements tracking.Observer.
type Publisher struct {
	src     FrameProvider
	sink    FrameSink
	encoder *Encoder
	every   int
}

// NewPublisher publishes one frame in every frames; values below 1 publish
// every frame.
func NewPublisher(src FrameProvider, sink FrameSink, overlay Overlay, every int) *Publisher {
	if every < 1 {
		every = 1
	}
	return &Publisher{
		src:     src,
		sink:    sink,
		encoder: NewEncoder(overlay),
		every:   every,
	}
}

// ObserveFrame implements tracking.Observer. Encoding failures are logged and
// do not stop the run.
func (p *Publisher) ObserveFrame(frame tracking.Frame, obs []tracking.Observation, sess *tracking.Session) error {
	if frame.Index%p.every != 0 {
		return nil
	}

	jpeg, err := p.encoder.Encode(p.src.Current(), frame, obs, Status(sess))
	if err != nil {
		log.Debug("preview frame skipped", "frame", frame.Index, "error", err)
		return nil
	}
	p.sink.SendCameraFrame(jpeg)
	return nil
}

// Close releases the encoder.
func (p *Publisher) Close() error {
	return p.encoder.Close()
}
