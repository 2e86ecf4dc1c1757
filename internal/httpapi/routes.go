package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the portal's HTTP surface. The session middleware
// runs on every route; upload and record mutations additionally require an
// authenticated viewer.
func RegisterRoutes(r fiber.Router, h *Handler, a *AuthHandler, session fiber.Handler) {
	r.Use(session)
	requireAuth := NewRequireAuthMW()

	r.Get("/auth/login", a.Login)
	r.Get("/auth/callback", a.Callback)
	r.Get("/auth/me", a.Me)
	r.Post("/auth/logout", a.Logout)

	r.Post("/upload", requireAuth, h.Upload)

	r.Get("/images", h.ListImages)
	r.Get("/images/:filename", h.GetImage)
	r.Put("/images/:filename", requireAuth, h.UpdateImage)
	r.Delete("/images/:filename", requireAuth, h.DeleteImage)

	r.Get("/files/:filename", h.ServeFile)
}
