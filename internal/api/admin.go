package api

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/halcyonpress/halcyon/internal/content"
	"github.com/halcyonpress/halcyon/internal/middleware"
)

// AdminListPosts handles GET /api/admin/posts. Includes drafts and pending
// scheduled posts so the dashboard shows the full pipeline.
func (h *Handlers) AdminListPosts(c *fiber.Ctx) error {
	posts := h.content.ListPosts(c.Context(), true)
	return c.JSON(fiber.Map{
		"total": len(posts),
		"items": posts,
	})
}

// AdminSavePost handles POST /api/admin/posts. Creates or updates; a set
// old_slug renames an existing post.
func (h *Handlers) AdminSavePost(c *fiber.Ctx) error {
	var in content.PostInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	post, err := h.content.SavePost(c.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// AdminDeletePost handles DELETE /api/admin/posts/:slug
func (h *Handlers) AdminDeletePost(c *fiber.Ctx) error {
	if err := h.content.DeletePost(c.Context(), middleware.SessionFrom(c), c.Params("slug")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AdminGetContent handles GET /api/admin/content
func (h *Handlers) AdminGetContent(c *fiber.Ctx) error {
	return c.JSON(h.content.GetContent(c.Context()))
}

// AdminSaveContent handles PUT /api/admin/content. The document is accepted
// as free-form JSON and normalized field by field; unknown keys are dropped
// rather than rejected.
func (h *Handlers) AdminSaveContent(c *fiber.Ctx) error {
	var doc map[string]any
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	saved, err := h.content.SaveContent(c.Context(), middleware.SessionFrom(c), doc)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(saved)
}

// AdminListMedia handles GET /api/admin/media
func (h *Handlers) AdminListMedia(c *fiber.Ctx) error {
	assets, err := h.media.List(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(assets),
		"items": assets,
	})
}

// AdminUploadMedia handles POST /api/admin/media (multipart). The "kind"
// field picks the bucket folder; unknown kinds land under other.
func (h *Handlers) AdminUploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing file upload",
		})
	}
	if fileHeader.Size > h.config.MaxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unreadable file upload",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.config.MaxUploadSize+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unreadable file upload",
		})
	}

	asset, err := h.media.Upload(c.Context(), middleware.SessionFrom(c), c.FormValue("kind"), fileHeader.Filename, data)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

// AdminDeleteMedia handles DELETE /api/admin/media. The reference may be an
// object path, a public bucket URL, or a legacy /images path.
func (h *Handlers) AdminDeleteMedia(c *fiber.Ctx) error {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing media path",
		})
	}

	if err := h.media.Delete(c.Context(), middleware.SessionFrom(c), req.Path); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AdminListSubscribers handles GET /api/admin/subscribers
func (h *Handlers) AdminListSubscribers(c *fiber.Ctx) error {
	subscribers, err := h.newsletter.List(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(subscribers),
		"items": subscribers,
	})
}

// AdminListAuthors handles GET /api/admin/authors
func (h *Handlers) AdminListAuthors(c *fiber.Ctx) error {
	authors := h.content.ListAuthors(c.Context())
	return c.JSON(fiber.Map{
		"total": len(authors),
		"items": authors,
	})
}

// AdminSaveAuthor handles POST /api/admin/authors
func (h *Handlers) AdminSaveAuthor(c *fiber.Ctx) error {
	var in content.AuthorInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	author, err := h.content.SaveAuthor(c.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(author)
}

// AdminDeleteAuthor handles DELETE /api/admin/authors/:id
func (h *Handlers) AdminDeleteAuthor(c *fiber.Ctx) error {
	if err := h.content.DeleteAuthor(c.Context(), middleware.SessionFrom(c), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AdminAnalyticsSummary handles GET /api/admin/analytics/summary
func (h *Handlers) AdminAnalyticsSummary(c *fiber.Ctx) error {
	summary, err := h.analytics.Summarize(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}
