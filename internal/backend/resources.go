package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/halcyonpress/halcyon/internal/models"
)

// cmsContentRowID is the fixed id of the CMS singleton row.
const cmsContentRowID = "1"

// ListPosts returns every stored post row, untyped.
func (c *Client) ListPosts(ctx context.Context) ([]map[string]any, error) {
	return c.selectRows(ctx, "posts", nil)
}

// GetPost returns the raw row for one slug, or nil when absent.
func (c *Client) GetPost(ctx context.Context, slug string) (map[string]any, error) {
	rows, err := c.selectRows(ctx, "posts", map[string]string{"slug": eq(slug), "limit": "1"})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// UpsertPost writes the stored fields of a post, keyed by slug. Derived
// fields never reach the backend.
func (c *Client) UpsertPost(ctx context.Context, p models.Post) error {
	return c.upsert(ctx, "posts", "slug", map[string]any{
		"slug":            p.Slug,
		"title":           p.Title,
		"excerpt":         p.Excerpt,
		"date":            p.Date,
		"category":        p.Category,
		"author_id":       p.AuthorID,
		"cover_image":     p.CoverImage,
		"cover_alt":       p.CoverAlt,
		"status":          string(p.Status),
		"publish_at":      p.PublishAt,
		"seo_title":       p.SeoTitle,
		"seo_description": p.SeoDescription,
		"focus_keyword":   p.FocusKeyword,
		"featured":        p.Featured,
		"recommended":     p.Recommended,
		"content":         p.Content,
	})
}

// DeletePost removes a post by slug.
func (c *Client) DeletePost(ctx context.Context, slug string) error {
	return c.deleteRows(ctx, "posts", map[string]string{"slug": eq(slug)})
}

// GetCmsContent returns the raw singleton document, or nil when the row is
// missing.
func (c *Client) GetCmsContent(ctx context.Context) (any, error) {
	rows, err := c.selectRows(ctx, "cms_content", map[string]string{"id": eq(cmsContentRowID)})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0]["data"], nil
}

// SaveCmsContent upserts the singleton document.
func (c *Client) SaveCmsContent(ctx context.Context, content models.CmsContent) error {
	return c.upsert(ctx, "cms_content", "id", map[string]any{
		"id":   cmsContentRowID,
		"data": content,
	})
}

// ListAuthors returns every stored author row, untyped.
func (c *Client) ListAuthors(ctx context.Context) ([]map[string]any, error) {
	return c.selectRows(ctx, "authors", nil)
}

// UpsertAuthor writes an author keyed by id.
func (c *Client) UpsertAuthor(ctx context.Context, a models.Author) error {
	return c.upsert(ctx, "authors", "id", map[string]any{
		"id":            a.ID,
		"name":          a.Name,
		"role":          a.Role,
		"short_bio":     a.ShortBio,
		"bio":           a.Bio,
		"avatar":        a.Avatar,
		"x_url":         a.XURL,
		"admin_user_id": a.AdminUserID,
	})
}

// DeleteAuthor removes an author by id.
func (c *Client) DeleteAuthor(ctx context.Context, id string) error {
	return c.deleteRows(ctx, "authors", map[string]string{"id": eq(id)})
}

// ListSubscribers returns every stored subscriber row, untyped.
func (c *Client) ListSubscribers(ctx context.Context) ([]map[string]any, error) {
	return c.selectRows(ctx, "newsletter_subscribers", nil)
}

// InsertSubscriber adds a signup; an existing email is kept untouched so the
// operation is idempotent.
func (c *Client) InsertSubscriber(ctx context.Context, s models.NewsletterSubscriber) error {
	return c.insertIgnoreDuplicates(ctx, "newsletter_subscribers", "email", map[string]any{
		"id":           s.ID,
		"email":        s.Email,
		"submitted_at": s.SubmittedAt.Format(time.RFC3339Nano),
		"source_path":  s.SourcePath,
	})
}

// ListMediaAssets returns every stored media row, untyped.
func (c *Client) ListMediaAssets(ctx context.Context) ([]map[string]any, error) {
	return c.selectRows(ctx, "media_assets", nil)
}

// UpsertMediaAsset registers an uploaded object, keyed by object path.
func (c *Client) UpsertMediaAsset(ctx context.Context, m models.MediaAsset) error {
	return c.upsert(ctx, "media_assets", "object_path", map[string]any{
		"object_path": m.ObjectPath,
		"public_url":  m.PublicURL,
		"size_bytes":  m.SizeBytes,
		"modified_at": m.ModifiedAt.Format(time.RFC3339Nano),
	})
}

// DeleteMediaAsset removes the registration row for an object path.
func (c *Client) DeleteMediaAsset(ctx context.Context, objectPath string) error {
	return c.deleteRows(ctx, "media_assets", map[string]string{"object_path": eq(objectPath)})
}

// InsertPageView records one analytics beacon.
func (c *Client) InsertPageView(ctx context.Context, v models.PageView) error {
	return c.insertIgnoreDuplicates(ctx, "page_views", "id", map[string]any{
		"id":         v.ID,
		"path":       v.Path,
		"referrer":   v.Referrer,
		"ip_hash":    v.IPHash,
		"user_agent": v.UserAgent,
		"created_at": v.CreatedAt.Format(time.RFC3339Nano),
	})
}

// ListRecentPageViews returns up to limit rows, newest first.
func (c *Client) ListRecentPageViews(ctx context.Context, limit int) ([]map[string]any, error) {
	return c.selectRows(ctx, "page_views", map[string]string{
		"order": "created_at.desc",
		"limit": fmt.Sprintf("%d", limit),
	})
}
