package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/kaleidolab/go-kaleido/pkg/hub"
)

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()
	return c.JSON(snap)
}

func (s *Server) handleListPatterns(c *fiber.Ctx) error {
	if s.OnListPatterns == nil {
		return c.JSON([]PatternInfo{})
	}
	return c.JSON(s.OnListPatterns())
}

func (s *Server) handleQueuePattern(c *fiber.Ctx) error {
	if s.OnQueuePattern == nil {
		return fiber.ErrServiceUnavailable
	}

	idx, err := c.ParamsInt("idx")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid pattern index")
	}

	if err := s.OnQueuePattern(idx); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(fiber.Map{"queued": idx})
}

func (s *Server) handleSetPool(c *fiber.Ctx) error {
	if s.OnSetPool == nil {
		return fiber.ErrServiceUnavailable
	}

	idx, err := c.ParamsInt("idx")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid pattern index")
	}

	var body struct {
		InPool bool `json:"in_pool"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := s.OnSetPool(idx, body.InPool); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(fiber.Map{"index": idx, "in_pool": body.InPool})
}

func (s *Server) handleSetMode(c *fiber.Ctx) error {
	if s.OnSetMode == nil {
		return fiber.ErrServiceUnavailable
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	s.OnSetMode(body.Enabled)
	return c.JSON(fiber.Map{"enabled": body.Enabled})
}

func (s *Server) handleSetAudio(c *fiber.Ctx) error {
	if s.OnSetAudio == nil {
		return fiber.ErrServiceUnavailable
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	s.OnSetAudio(body.Enabled)
	return c.JSON(fiber.Map{"enabled": body.Enabled})
}

func (s *Server) handleSetCamera(c *fiber.Ctx) error {
	if s.OnSetCamera == nil {
		return fiber.ErrServiceUnavailable
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	s.OnSetCamera(body.Enabled)
	return c.JSON(fiber.Map{"enabled": body.Enabled})
}

// handleSignalsWS streams per-tick snapshots to a dashboard client.
func (s *Server) handleSignalsWS(c *websocket.Conn) {
	client := hub.NewClient(s.signalHub, c)
	client.Run()
}
