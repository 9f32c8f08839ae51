package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/halcyonpress/halcyon/internal/middleware"
)

// SetupRoutes configures all the routes for the application.
func SetupRoutes(app *fiber.App, h *Handlers) {
	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	app.Get("/health", h.HealthCheck)

	api := app.Group("/api")

	// Public read surface
	api.Get("/posts", h.GetPosts)
	api.Get("/posts/:slug", h.GetPostBySlug)
	api.Get("/content", h.GetContent)
	api.Get("/authors", h.GetAuthors)
	api.Get("/media/*", h.MediaProxy)

	// Public write surface, same-origin only
	api.Post("/newsletter/subscribe", middleware.SameOrigin(), h.Subscribe)
	api.Post("/analytics/track", middleware.SameOrigin(), h.Track)

	// Admin endpoints behind the session gate
	admin := api.Group("/admin", middleware.RequireSession(h.config.SessionSecret))
	{
		admin.Get("/posts", h.AdminListPosts)
		admin.Post("/posts", h.AdminSavePost)
		admin.Delete("/posts/:slug", h.AdminDeletePost)

		admin.Get("/content", h.AdminGetContent)
		admin.Put("/content", h.AdminSaveContent)

		admin.Get("/media", h.AdminListMedia)
		admin.Post("/media", h.AdminUploadMedia)
		admin.Delete("/media", h.AdminDeleteMedia)

		admin.Get("/subscribers", h.AdminListSubscribers)

		admin.Get("/authors", h.AdminListAuthors)
		admin.Post("/authors", h.AdminSaveAuthor)
		admin.Delete("/authors/:id", h.AdminDeleteAuthor)

		admin.Get("/analytics/summary", h.AdminAnalyticsSummary)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
