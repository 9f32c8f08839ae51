package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/halcyonpress/halcyon/internal/analytics"
	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/config"
	"github.com/halcyonpress/halcyon/internal/content"
	"github.com/halcyonpress/halcyon/internal/logger"
	"github.com/halcyonpress/halcyon/internal/media"
	"github.com/halcyonpress/halcyon/internal/models"
	"github.com/halcyonpress/halcyon/internal/newsletter"
)

// maxTrackBodyBytes is the declared-size ceiling for the analytics beacon.
const maxTrackBodyBytes = 4096

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	config     *config.Config
	content    *content.Service
	newsletter *newsletter.Service
	analytics  *analytics.Tracker
	media      *media.Service
}

func NewHandlers(cfg *config.Config, contentSvc *content.Service, newsletterSvc *newsletter.Service, tracker *analytics.Tracker, mediaSvc *media.Service) *Handlers {
	return &Handlers{
		config:     cfg,
		content:    contentSvc,
		newsletter: newsletterSvc,
		analytics:  tracker,
		media:      mediaSvc,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GetPosts handles GET /api/posts. Only live posts, newest first.
func (h *Handlers) GetPosts(c *fiber.Ctx) error {
	posts := h.content.ListPosts(c.Context(), false)
	return c.JSON(fiber.Map{
		"total": len(posts),
		"items": posts,
	})
}

// GetPostBySlug handles GET /api/posts/:slug. Drafts and pending scheduled
// posts read as not found for public callers, and so does a backend failure;
// the public read surface never serves a 5xx.
func (h *Handlers) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := h.content.GetPost(c.Context(), slug, false)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			logger.Get().Error().Err(err).Str("slug", slug).Msg("post read failed")
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	return c.JSON(post)
}

// GetContent handles GET /api/content. Always 200; failures fall back to the
// default content table inside the service.
func (h *Handlers) GetContent(c *fiber.Ctx) error {
	return c.JSON(h.content.GetContent(c.Context()))
}

// GetAuthors handles GET /api/authors
func (h *Handlers) GetAuthors(c *fiber.Ctx) error {
	authors := h.content.ListAuthors(c.Context())
	return c.JSON(fiber.Map{
		"total": len(authors),
		"items": authors,
	})
}

// Subscribe handles POST /api/newsletter/subscribe (same-origin guarded).
// Duplicate emails succeed so resubmitting a form never shows an error.
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	var req struct {
		Email      string `json:"email"`
		SourcePath string `json:"source_path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.newsletter.Subscribe(c.Context(), req.Email, req.SourcePath); err != nil {
		if errors.Is(err, newsletter.ErrInvalidEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please enter a valid email address.",
				"field": "email",
			})
		}
		logger.Get().Error().Err(err).Msg("newsletter signup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong. Please try again later.",
		})
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": h.content.GetContent(c.Context()).Newsletter.SuccessMessage,
	})
}

// Track handles POST /api/analytics/track (same-origin guarded). Invalid
// input gets a 400 or 413; anything failing past that point is reported as
// {ok:false} with a 200, never a 5xx — a broken beacon must not break pages.
func (h *Handlers) Track(c *fiber.Ctx) error {
	if c.Request().Header.ContentLength() > maxTrackBodyBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"ok": false,
		})
	}

	var req struct {
		Path     string `json:"path"`
		Referrer string `json:"referrer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false})
	}
	if err := analytics.ValidatePath(req.Path); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false})
	}

	if err := h.analytics.Track(c.Context(), req.Path, req.Referrer, c.IP(), c.Get(fiber.HeaderUserAgent)); err != nil {
		logger.Get().Error().Err(err).Msg("page view write failed")
		return c.JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// MediaProxy handles GET /api/media/*. It serves bucket objects same-origin,
// which is what makes remote SVGs renderable everywhere.
func (h *Handlers) MediaProxy(c *fiber.Ctx) error {
	objectPath := c.Params("*")
	if !models.SafeObjectPath(objectPath) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid media path",
		})
	}

	data, contentType, err := h.media.Fetch(c.Context(), objectPath)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Media not found",
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}

// respondServiceError maps service errors onto the HTTP surface for admin
// write paths.
func respondServiceError(c *fiber.Ctx, err error) error {
	var permErr *auth.PermissionError
	var valErr *content.ValidationError

	switch {
	case errors.Is(err, content.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.As(err, &permErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": permErr.Reason,
		})
	case errors.As(err, &valErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": valErr.Message,
			"field": valErr.Field,
		})
	case errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrTooLarge),
		errors.Is(err, media.ErrUnrecognizedMediaPath):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		logger.Get().Error().Err(err).Str("path", c.Path()).Msg("admin operation failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "The content backend is unavailable. Please try again.",
		})
	}
}
