package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/igwenababa1/scbvault/internal/logging"
)

// Server runs the fiber app until the context is canceled.
type Server struct {
	app    *fiber.App
	addr   string
	logger logging.Logger
}

func NewServer(addr string, h *Handler, mw *Middleware, logger logging.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "scbvault",
		DisableStartupMessage: true,
	})
	RegisterRoutes(app, h, mw)
	return &Server{app: app, addr: addr, logger: logger}
}

// Run listens on the configured address and shuts the server down when ctx
// is canceled. Returns the listener error, if any.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "shutting down http server")
		return s.app.Shutdown()
	case err := <-errCh:
		return err
	}
}
