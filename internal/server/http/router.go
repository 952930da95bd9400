package http

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the HTTP routes.
func RegisterRoutes(app *fiber.App, h *Handler, mw *Middleware) {
	app.Get("/health/live", h.Live)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", h.Register)
	authGroup.Post("/logout", h.Logout)
	authGroup.Get("/session", h.Session)

	api.Put("/profile", mw.RequireUser, h.UpdateProfile)

	shell := api.Group("/shell")
	shell.Get("/snapshot", h.OfferSnapshot)
	shell.Put("/snapshot", h.SaveSnapshot)
	shell.Post("/snapshot/restore", h.RestoreSnapshot)
	shell.Post("/snapshot/discard", h.DiscardSnapshot)
	shell.Put("/view", h.SetDashboardView)
}
