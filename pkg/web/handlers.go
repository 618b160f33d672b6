package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-dwell/pkg/hub"
)

// ConfigView is the run configuration as served by /api/config
type ConfigView struct {
	Video         string  `json:"video"`
	Extractor     string  `json:"extractor"`
	Strategy      string  `json:"strategy"`
	ZoneX         float64 `json:"zone_x"`
	ZoneY         float64 `json:"zone_y"`
	ZoneRadius    float64 `json:"zone_radius"`
	MinArea       float64 `json:"min_area"`
	MaxArea       float64 `json:"max_area"`
	MinDistance   float64 `json:"min_distance"`
	MaxDistance   float64 `json:"max_distance"`
	DwellPerFrame bool    `json:"dwell_per_frame"`
	FPS           float64 `json:"fps"`
}

func (s *Server) configView() ConfigView {
	cfg := s.info.Config
	return ConfigView{
		Video:         s.info.Video,
		Extractor:     s.info.Extractor,
		Strategy:      cfg.Strategy,
		ZoneX:         cfg.Zone.Center.X,
		ZoneY:         cfg.Zone.Center.Y,
		ZoneRadius:    cfg.Zone.Radius,
		MinArea:       cfg.MinArea,
		MaxArea:       cfg.MaxArea,
		MinDistance:   cfg.MinDistance,
		MaxDistance:   cfg.MaxDistance,
		DwellPerFrame: cfg.DwellPerFrame,
		FPS:           s.info.FPS,
	}
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(indexHTML)
}

// handleStatus returns the current run state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.State())
}

// handleConfig returns the run configuration
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.configView())
}

// handleGetLogs returns recent log entries
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return c.JSON(s.logs)
}

func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.Serve(s.statusHub, c)
}

func (s *Server) handleLogsWS(c *websocket.Conn) {
	hub.Serve(s.logHub, c)
}

func (s *Server) handleCameraWS(c *websocket.Conn) {
	hub.Serve(s.cameraHub, c)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
