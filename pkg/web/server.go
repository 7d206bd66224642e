// Package web provides the control and monitoring surface for go-kaleido:
// a REST API for pattern, pool and mode control, and a websocket stream of
// per-tick signal snapshots.
//
// Handlers never touch the compositor or the engines directly; every
// mutation goes through a callback the main loop wires to its command
// channel, so the tick loop stays single-threaded.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/kaleidolab/go-kaleido/internal/log"
	"github.com/kaleidolab/go-kaleido/pkg/audio"
	"github.com/kaleidolab/go-kaleido/pkg/compositor"
	"github.com/kaleidolab/go-kaleido/pkg/gesture"
	"github.com/kaleidolab/go-kaleido/pkg/hub"
)

// Snapshot is one tick's worth of state pushed to dashboard clients.
type Snapshot struct {
	Tick        uint64                 `json:"tick"`
	Features    audio.FeatureVector    `json:"features"`
	Gesture     gesture.State          `json:"gesture"`
	Layers      []compositor.LayerInfo `json:"layers"`
	Enabled     bool                   `json:"enabled"`
	AudioReady  bool                   `json:"audio_ready"`
	CameraReady bool                   `json:"camera_ready"`
}

// PatternInfo describes one registered pattern for the dashboard.
type PatternInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	InPool bool   `json:"in_pool"`
}

// Server is the dashboard server.
type Server struct {
	app  *fiber.App
	port string

	mu     sync.RWMutex
	latest Snapshot

	signalHub *hub.Hub

	// Callbacks wired by the main loop. Each is invoked from a fiber
	// handler goroutine and must hand work to the tick loop itself.
	OnListPatterns func() []PatternInfo
	OnQueuePattern func(idx int) error
	OnSetPool      func(idx int, inPool bool) error
	OnSetMode      func(enabled bool)
	OnSetAudio     func(enabled bool)
	OnSetCamera    func(enabled bool)
}

// NewServer creates the dashboard server.
func NewServer(port string) *Server {
	s := &Server{
		port:      port,
		signalHub: hub.New("signals"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Kaleido Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/patterns", s.handleListPatterns)
	api.Post("/patterns/:idx/queue", s.handleQueuePattern)
	api.Post("/patterns/:idx/pool", s.handleSetPool)
	api.Post("/mode", s.handleSetMode)
	api.Post("/audio", s.handleSetAudio)
	api.Post("/camera", s.handleSetCamera)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/signals", websocket.New(s.handleSignalsWS))

	s.app = app
	return s
}

// Start runs the server, blocking.
func (s *Server) Start() error {
	go s.signalHub.Run()
	log.Info("web: dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web: server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PublishSnapshot stores the latest snapshot and broadcasts it to all
// websocket clients. Called once per tick from the main loop.
func (s *Server) PublishSnapshot(snap Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	s.signalHub.BroadcastJSON(snap)
}

// ClientCount returns the number of connected signal-stream clients.
func (s *Server) ClientCount() int {
	return s.signalHub.ClientCount()
}
