// Package web serves a live dashboard for a dwell-time run
package web

import (
	"context"
	_ "embed"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/hub"
	"github.com/teslashibe/go-dwell/pkg/tracking"
)

//go:embed index.html
var indexHTML []byte

const maxLogs = 500

// NosePoint is a pixel position in the frame
type NosePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RunState is the dashboard view of the run in progress
type RunState struct {
	RunID        string     `json:"run_id"`
	Video        string     `json:"video"`
	Running      bool       `json:"running"`
	Frame        int        `json:"frame"`
	FramesTotal  int        `json:"frames_total"`
	Progress     float64    `json:"progress"` // 0-100%, 0 when the total is unknown
	FPS          float64    `json:"fps"`
	DwellCount   int        `json:"dwell_count"`
	DwellSeconds float64    `json:"dwell_seconds"`
	Nose         *NosePoint `json:"nose,omitempty"`
	InZone       bool       `json:"in_zone"`
	Error        string     `json:"error,omitempty"`
}

// LogEntry is a run event shown on the dashboard
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, zone, error
	Message string `json:"message"`
}

// RunInfo describes the run being served
type RunInfo struct {
	Video       string
	Extractor   string
	Config      tracking.Config
	FPS         float64
	FramesTotal int
}

// Server is the web dashboard server
type Server struct {
	app  *fiber.App
	port string
	info RunInfo

	state   RunState
	stateMu sync.RWMutex
	inZone  bool // Last frame's zone state, for enter/leave events

	logs   []LogEntry
	logsMu sync.RWMutex

	statusHub *hub.Hub
	logHub    *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates a dashboard server for the run described by info
func NewServer(port string, info RunInfo) *Server {
	s := &Server{
		port: port,
		info: info,
		state: RunState{
			RunID:       uuid.NewString(),
			Video:       info.Video,
			Running:     true,
			FramesTotal: info.FramesTotal,
			FPS:         info.FPS,
		},
		logs:      make([]LogEntry, 0, maxLogs),
		statusHub: hub.New("status"),
		logHub:    hub.New("logs"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Dwell Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleConfig)
	api.Get("/logs", s.handleGetLogs)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/logs", websocket.New(s.handleLogsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app

	// Queued until the hub starts, then replayed to each new client
	s.statusHub.BroadcastJSON(s.state)
	return s
}

// RunID returns the identifier of the served run
func (s *Server) RunID() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state.RunID
}

// Start runs the hubs and serves on the configured port until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	log.Info("web dashboard listening", "url", "http://localhost:"+s.port, "run_id", s.RunID())
	s.startHubs(ctx)
	return s.app.Listen(":" + s.port)
}

// Serve is like Start but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.startHubs(ctx)
	return s.app.Listener(ln)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			log.Warn("web server stopped", "error", err)
		}
	}()
}

func (s *Server) startHubs(ctx context.Context) {
	go s.statusHub.Run(ctx)
	go s.logHub.Run(ctx)
	go s.cameraHub.Run(ctx)
}

// ObserveFrame implements tracking.Observer. It publishes the session totals
// and logs zone entries and exits.
func (s *Server) ObserveFrame(frame tracking.Frame, obs []tracking.Observation, sess *tracking.Session) error {
	inZone := false
	for _, o := range obs {
		inZone = inZone || o.InZone
	}
	nose, hasNose := sess.Nose()
	result, resultErr := sess.Result()

	s.UpdateState(func(st *RunState) {
		st.Frame = frame.Index
		if st.FramesTotal > 0 {
			st.Progress = 100 * float64(frame.Index+1) / float64(st.FramesTotal)
		}
		st.DwellCount = result.DwellCount
		st.DwellSeconds = result.Seconds
		st.Error = ""
		if resultErr != nil {
			st.Error = resultErr.Error()
		}
		st.InZone = inZone
		if hasNose {
			st.Nose = &NosePoint{X: nose.X, Y: nose.Y}
		}
	})

	if inZone != s.inZone {
		s.inZone = inZone
		if inZone {
			s.AddLog("zone", "nose entered zone at frame "+itoa(frame.Index))
		} else {
			s.AddLog("zone", "nose left zone at frame "+itoa(frame.Index))
		}
	}
	return nil
}

// Finish records the end of the run
func (s *Server) Finish(result tracking.Result, err error) {
	s.UpdateState(func(st *RunState) {
		st.Running = false
		st.DwellCount = result.DwellCount
		st.DwellSeconds = result.Seconds
		if err != nil {
			st.Error = err.Error()
		}
	})
	if err != nil {
		s.AddLog("error", err.Error())
		return
	}
	s.AddLog("info", "run finished after "+itoa(result.Frames)+" frames")
}

// UpdateState updates the run state and broadcasts it to clients
func (s *Server) UpdateState(update func(*RunState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state // Copy for broadcast
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// State returns a copy of the current run state
func (s *Server) State() RunState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// AddLog adds a log entry and broadcasts to clients
func (s *Server) AddLog(logType, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	s.logHub.BroadcastJSON(entry)
}

// SendCameraFrame sends an annotated JPEG frame to all camera clients
func (s *Server) SendCameraFrame(jpeg []byte) {
	s.cameraHub.BroadcastBinary(jpeg)
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
