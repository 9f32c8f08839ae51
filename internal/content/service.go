package content

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/cache"
	"github.com/halcyonpress/halcyon/internal/logger"
	"github.com/halcyonpress/halcyon/internal/media"
	"github.com/halcyonpress/halcyon/internal/metrics"
	"github.com/halcyonpress/halcyon/internal/models"
	"github.com/halcyonpress/halcyon/internal/sanitize"
)

// ErrNotFound is returned when a post or author does not exist, or exists
// but is not visible to the caller.
var ErrNotFound = errors.New("content: not found")

// ValidationError marks user-correctable input problems on write paths.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// PostStore is the slice of the backend the post paths need.
type PostStore interface {
	ListPosts(ctx context.Context) ([]map[string]any, error)
	GetPost(ctx context.Context, slug string) (map[string]any, error)
	UpsertPost(ctx context.Context, p models.Post) error
	DeletePost(ctx context.Context, slug string) error
}

// AuthorStore is the slice of the backend the author paths need.
type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]map[string]any, error)
	UpsertAuthor(ctx context.Context, a models.Author) error
	DeleteAuthor(ctx context.Context, id string) error
}

// CmsStore is the slice of the backend the CMS singleton needs.
type CmsStore interface {
	GetCmsContent(ctx context.Context) (any, error)
	SaveCmsContent(ctx context.Context, content models.CmsContent) error
}

// Service owns every content read and write. Reads absorb backend failures
// into safe defaults; writes surface them.
type Service struct {
	posts    PostStore
	authors  AuthorStore
	cms      CmsStore
	cache    cache.Cache
	norm     *media.Normalizer
	cacheTTL time.Duration
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the content service. now is replaceable for tests.
func NewService(posts PostStore, authors AuthorStore, cms CmsStore, c cache.Cache, norm *media.Normalizer, cacheTTL time.Duration) *Service {
	return &Service{
		posts:    posts,
		authors:  authors,
		cms:      cms,
		cache:    c,
		norm:     norm,
		cacheTTL: cacheTTL,
		validate: validator.New(),
		now:      time.Now,
	}
}

// decorate fills the derived fields of a sanitized post.
func (s *Service) decorate(p models.Post) models.Post {
	v := Resolve(p.Status, p.PublishAt, s.now())
	p.IsPublished = v == VisibilityPublished || v == VisibilityScheduledLive
	p.VisibilityLabel = Label(v)
	p.CoverImage = s.norm.RenderableImageSrc(p.CoverImage)
	return p
}

// ListPosts returns posts ordered descending by effective timestamp. With
// includeUnpublished, drafts and pending scheduled posts are included and
// labeled; otherwise only live posts. Malformed rows are dropped silently:
// the listing degrades rather than failing closed. Backend failures degrade
// to an empty list.
func (s *Service) ListPosts(ctx context.Context, includeUnpublished bool) []models.Post {
	if !includeUnpublished {
		if raw, ok := s.cache.Get(ctx, cache.KeyPublicPosts); ok {
			var cached []models.Post
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached
			}
		}
	}

	rows, err := s.posts.ListPosts(ctx)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("posts").Inc()
		logger.Get().Error().Err(err).Msg("failed to list posts, serving empty listing")
		return []models.Post{}
	}

	out := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		p, ok := sanitize.Post(row)
		if !ok {
			continue
		}
		p = s.decorate(p)
		if !includeUnpublished && !p.IsPublished {
			continue
		}
		out = append(out, p)
	}
	SortPosts(out)

	if !includeUnpublished {
		if raw, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cache.KeyPublicPosts, raw, s.cacheTTL)
		}
	}
	return out
}

// GetPost returns a single post by slug. Posts that exist but are not live
// read as not found for public callers.
func (s *Service) GetPost(ctx context.Context, slug string, includeUnpublished bool) (models.Post, error) {
	row, err := s.posts.GetPost(ctx, slug)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("posts").Inc()
		return models.Post{}, err
	}
	if row == nil {
		return models.Post{}, ErrNotFound
	}
	p, ok := sanitize.Post(row)
	if !ok {
		return models.Post{}, ErrNotFound
	}
	p = s.decorate(p)
	if !includeUnpublished && !p.IsPublished {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

// PostInput is the admin save-post payload. Slug is the stable identity;
// renames carry the previous slug in OldSlug and are executed as
// delete+recreate.
type PostInput struct {
	Slug           string `json:"slug" validate:"required,max=200"`
	OldSlug        string `json:"old_slug" validate:"omitempty,max=200"`
	Title          string `json:"title" validate:"required,max=300"`
	Excerpt        string `json:"excerpt" validate:"max=500"`
	Date           string `json:"date" validate:"required"`
	Category       string `json:"category" validate:"max=100"`
	AuthorID       string `json:"author_id" validate:"required"`
	CoverImage     string `json:"cover_image" validate:"max=1000"`
	CoverAlt       string `json:"cover_alt" validate:"max=300"`
	Status         string `json:"status" validate:"required,oneof=published draft scheduled"`
	PublishAt      string `json:"publish_at"`
	SeoTitle       string `json:"seo_title" validate:"max=300"`
	SeoDescription string `json:"seo_description" validate:"max=500"`
	FocusKeyword   string `json:"focus_keyword" validate:"max=100"`
	Featured       bool   `json:"featured"`
	Recommended    bool   `json:"recommended"`
	Content        string `json:"content"`
}

// SavePost validates, authorizes and upserts a post, handling slug renames.
func (s *Service) SavePost(ctx context.Context, sess *auth.Session, in PostInput) (models.Post, error) {
	if err := s.validate.Struct(in); err != nil {
		return models.Post{}, &ValidationError{Field: firstField(err), Message: "invalid value"}
	}
	if _, ok := sanitize.Time(in.Date); !ok {
		return models.Post{}, &ValidationError{Field: "date", Message: "must be a valid date"}
	}
	if in.Status == string(models.StatusScheduled) {
		if _, ok := sanitize.Time(in.PublishAt); !ok {
			return models.Post{}, &ValidationError{Field: "publish_at", Message: "scheduled posts need a valid publish time"}
		}
	}

	linked := s.linkedAuthorID(ctx, sess)
	if d := auth.CanManagePost(sess, linked, in.AuthorID); !d.Allowed {
		return models.Post{}, &auth.PermissionError{Reason: d.Reason}
	}

	// A rename deletes the old row first. The editor must own the old post
	// too, otherwise a rename would be a way to delete someone else's work.
	if in.OldSlug != "" && in.OldSlug != in.Slug {
		oldRow, err := s.posts.GetPost(ctx, in.OldSlug)
		if err != nil {
			return models.Post{}, err
		}
		if oldRow != nil {
			if old, ok := sanitize.Post(oldRow); ok {
				if d := auth.CanManagePost(sess, linked, old.AuthorID); !d.Allowed {
					return models.Post{}, &auth.PermissionError{Reason: d.Reason}
				}
			}
			if err := s.posts.DeletePost(ctx, in.OldSlug); err != nil {
				return models.Post{}, err
			}
		}
	}

	post := models.Post{
		Slug:           in.Slug,
		Title:          in.Title,
		Excerpt:        in.Excerpt,
		Date:           in.Date,
		Category:       in.Category,
		AuthorID:       in.AuthorID,
		CoverImage:     in.CoverImage,
		CoverAlt:       in.CoverAlt,
		Status:         models.PostStatus(in.Status),
		PublishAt:      in.PublishAt,
		SeoTitle:       in.SeoTitle,
		SeoDescription: in.SeoDescription,
		FocusKeyword:   in.FocusKeyword,
		Featured:       in.Featured,
		Recommended:    in.Recommended,
		Content:        in.Content,
	}
	if post.Category == "" {
		post.Category = "general"
	}
	if err := s.posts.UpsertPost(ctx, post); err != nil {
		metrics.BackendErrors.WithLabelValues("posts").Inc()
		return models.Post{}, err
	}

	s.cache.Delete(ctx, cache.KeyPublicPosts)
	post.ReadingTimeMinutes, post.ReadingTimeText = sanitize.ReadingTime(post.Content)
	return s.decorate(post), nil
}

// DeletePost authorizes and deletes a post by slug.
func (s *Service) DeletePost(ctx context.Context, sess *auth.Session, slug string) error {
	row, err := s.posts.GetPost(ctx, slug)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}

	linked := s.linkedAuthorID(ctx, sess)
	if p, ok := sanitize.Post(row); ok {
		if d := auth.CanManagePost(sess, linked, p.AuthorID); !d.Allowed {
			return &auth.PermissionError{Reason: d.Reason}
		}
	} else if d := auth.CanManageSite(sess); !d.Allowed {
		// Malformed rows can only be cleaned up by an admin.
		return &auth.PermissionError{Reason: d.Reason}
	}

	if err := s.posts.DeletePost(ctx, slug); err != nil {
		metrics.BackendErrors.WithLabelValues("posts").Inc()
		return err
	}
	s.cache.Delete(ctx, cache.KeyPublicPosts)
	return nil
}

// GetContent returns the sanitized CMS singleton. Any failure, missing row
// or malformed document falls back to the default content table; a content
// site rendering defaults beats a content site rendering an error page.
func (s *Service) GetContent(ctx context.Context) models.CmsContent {
	if raw, ok := s.cache.Get(ctx, cache.KeyCmsContent); ok {
		var cached models.CmsContent
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached
		}
	}

	doc, err := s.cms.GetCmsContent(ctx)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("cms_content").Inc()
		logger.Get().Error().Err(err).Msg("failed to load CMS content, serving defaults")
		return sanitize.DefaultContent()
	}

	out := sanitize.CmsContent(doc)
	if raw, err := json.Marshal(out); err == nil {
		s.cache.Set(ctx, cache.KeyCmsContent, raw, s.cacheTTL)
	}
	return out
}

// SaveContent sanitizes and persists the CMS singleton. Admin only.
func (s *Service) SaveContent(ctx context.Context, sess *auth.Session, doc any) (models.CmsContent, error) {
	if d := auth.CanManageSite(sess); !d.Allowed {
		return models.CmsContent{}, &auth.PermissionError{Reason: d.Reason}
	}

	sanitized := sanitize.CmsContent(doc)
	if err := s.cms.SaveCmsContent(ctx, sanitized); err != nil {
		metrics.BackendErrors.WithLabelValues("cms_content").Inc()
		return models.CmsContent{}, err
	}
	s.cache.Delete(ctx, cache.KeyCmsContent)
	return sanitized, nil
}

// ListAuthors returns sanitized authors. Backend failures degrade to empty.
func (s *Service) ListAuthors(ctx context.Context) []models.Author {
	if raw, ok := s.cache.Get(ctx, cache.KeyAuthors); ok {
		var cached []models.Author
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached
		}
	}

	rows, err := s.authors.ListAuthors(ctx)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("authors").Inc()
		logger.Get().Error().Err(err).Msg("failed to list authors, serving empty listing")
		return []models.Author{}
	}

	out := make([]models.Author, 0, len(rows))
	for _, row := range rows {
		if a, ok := sanitize.Author(row); ok {
			a.Avatar = s.norm.RenderableImageSrc(a.Avatar)
			out = append(out, a)
		}
	}

	if raw, err := json.Marshal(out); err == nil {
		s.cache.Set(ctx, cache.KeyAuthors, raw, s.cacheTTL)
	}
	return out
}

// AuthorInput is the admin save-author payload.
type AuthorInput struct {
	ID          string `json:"id" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,max=200"`
	Role        string `json:"role" validate:"max=200"`
	ShortBio    string `json:"short_bio" validate:"max=500"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar" validate:"max=1000"`
	XURL        string `json:"x_url" validate:"omitempty,url,max=500"`
	AdminUserID string `json:"admin_user_id" validate:"max=100"`
}

// SaveAuthor validates and upserts an author. Admin only.
func (s *Service) SaveAuthor(ctx context.Context, sess *auth.Session, in AuthorInput) (models.Author, error) {
	if d := auth.CanManageSite(sess); !d.Allowed {
		return models.Author{}, &auth.PermissionError{Reason: d.Reason}
	}
	if err := s.validate.Struct(in); err != nil {
		return models.Author{}, &ValidationError{Field: firstField(err), Message: "invalid value"}
	}

	author := models.Author{
		ID:          in.ID,
		Name:        in.Name,
		Role:        in.Role,
		ShortBio:    in.ShortBio,
		Bio:         in.Bio,
		Avatar:      in.Avatar,
		XURL:        in.XURL,
		AdminUserID: in.AdminUserID,
	}
	if author.Role == "" {
		author.Role = "Contributor"
	}
	if err := s.authors.UpsertAuthor(ctx, author); err != nil {
		metrics.BackendErrors.WithLabelValues("authors").Inc()
		return models.Author{}, err
	}
	s.cache.Delete(ctx, cache.KeyAuthors)
	return author, nil
}

// DeleteAuthor removes an author by id. Admin only.
func (s *Service) DeleteAuthor(ctx context.Context, sess *auth.Session, id string) error {
	if d := auth.CanManageSite(sess); !d.Allowed {
		return &auth.PermissionError{Reason: d.Reason}
	}
	if err := s.authors.DeleteAuthor(ctx, id); err != nil {
		metrics.BackendErrors.WithLabelValues("authors").Inc()
		return err
	}
	s.cache.Delete(ctx, cache.KeyAuthors)
	return nil
}

// linkedAuthorID resolves the author profile linked to the session identity,
// or "" when none is linked. Admins never need one.
func (s *Service) linkedAuthorID(ctx context.Context, sess *auth.Session) string {
	if sess == nil || sess.Role == auth.RoleAdmin {
		return ""
	}
	for _, a := range s.ListAuthors(ctx) {
		if a.AdminUserID != "" && a.AdminUserID == sess.UserID {
			return a.ID
		}
	}
	return ""
}

// firstField names the first failing field of a validator error for the
// user-facing message.
func firstField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return "input"
}
