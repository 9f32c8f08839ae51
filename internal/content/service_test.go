package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/cache"
	"github.com/halcyonpress/halcyon/internal/media"
	"github.com/halcyonpress/halcyon/internal/models"
)

// fakeBackend implements PostStore, AuthorStore and CmsStore in memory.
type fakeBackend struct {
	posts        map[string]map[string]any
	authors      []map[string]any
	cmsDoc       any
	listErr      error
	cmsErr       error
	upserted     []models.Post
	deletedSlugs []string
	savedCms     *models.CmsContent
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{posts: map[string]map[string]any{}}
}

func (f *fakeBackend) ListPosts(context.Context) ([]map[string]any, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]map[string]any, 0, len(f.posts))
	for _, row := range f.posts {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeBackend) GetPost(_ context.Context, slug string) (map[string]any, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	row, ok := f.posts[slug]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (f *fakeBackend) UpsertPost(_ context.Context, p models.Post) error {
	f.upserted = append(f.upserted, p)
	f.posts[p.Slug] = map[string]any{
		"slug": p.Slug, "title": p.Title, "author_id": p.AuthorID,
		"date": p.Date, "status": string(p.Status), "publish_at": p.PublishAt,
	}
	return nil
}

func (f *fakeBackend) DeletePost(_ context.Context, slug string) error {
	f.deletedSlugs = append(f.deletedSlugs, slug)
	delete(f.posts, slug)
	return nil
}

func (f *fakeBackend) ListAuthors(context.Context) ([]map[string]any, error) {
	return f.authors, nil
}

func (f *fakeBackend) UpsertAuthor(_ context.Context, a models.Author) error { return nil }

func (f *fakeBackend) DeleteAuthor(_ context.Context, id string) error { return nil }

func (f *fakeBackend) GetCmsContent(context.Context) (any, error) {
	if f.cmsErr != nil {
		return nil, f.cmsErr
	}
	return f.cmsDoc, nil
}

func (f *fakeBackend) SaveCmsContent(_ context.Context, c models.CmsContent) error {
	f.savedCms = &c
	return nil
}

func newTestService(fb *fakeBackend) *Service {
	norm := media.NewNormalizer("https://backend.example.com/storage/v1/object/public/media")
	s := NewService(fb, fb, fb, cache.NewMemoryCache(time.Minute), norm, time.Minute)
	s.now = func() time.Time { return testNow }
	return s
}

func addPost(fb *fakeBackend, slug, status, date, publishAt string) {
	fb.posts[slug] = map[string]any{
		"slug": slug, "title": "T " + slug, "author_id": "jo",
		"date": date, "status": status, "publish_at": publishAt,
	}
}

func adminSession() *auth.Session {
	return &auth.Session{UserID: "u-admin", Email: "a@example.com", Role: auth.RoleAdmin}
}

func editorSession() *auth.Session {
	return &auth.Session{UserID: "u-editor", Email: "e@example.com", Role: auth.RoleEditor}
}

func TestListPostsPublicFiltersByVisibility(t *testing.T) {
	fb := newFakeBackend()
	addPost(fb, "live", "published", "2025-06-01", "")
	addPost(fb, "draft", "draft", "2025-06-02", "")
	addPost(fb, "sched-live", "scheduled", "2025-06-01", "2025-06-10T00:00:00Z")
	addPost(fb, "sched-future", "scheduled", "2025-06-01", "2026-01-01T00:00:00Z")
	svc := newTestService(fb)

	public := svc.ListPosts(context.Background(), false)
	slugs := make([]string, len(public))
	for i, p := range public {
		slugs[i] = p.Slug
	}
	assert.Equal(t, []string{"sched-live", "live"}, slugs)
	for _, p := range public {
		assert.True(t, p.IsPublished)
		assert.Equal(t, "Published", p.VisibilityLabel)
	}
}

func TestListPostsAdminIncludesEverythingLabeled(t *testing.T) {
	fb := newFakeBackend()
	addPost(fb, "draft", "draft", "2025-06-02", "")
	addPost(fb, "sched-future", "scheduled", "2025-06-01", "2026-01-01T00:00:00Z")
	svc := newTestService(fb)

	all := svc.ListPosts(context.Background(), true)
	require.Len(t, all, 2)

	labels := map[string]string{}
	for _, p := range all {
		labels[p.Slug] = p.VisibilityLabel
	}
	assert.Equal(t, "Draft", labels["draft"])
	assert.Equal(t, "Scheduled", labels["sched-future"])
}

func TestListPostsBackendFailureDegradesToEmpty(t *testing.T) {
	fb := newFakeBackend()
	fb.listErr = errors.New("backend down")
	svc := newTestService(fb)

	posts := svc.ListPosts(context.Background(), false)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestListPostsDropsMalformedRows(t *testing.T) {
	fb := newFakeBackend()
	addPost(fb, "good", "published", "2025-06-01", "")
	fb.posts["bad"] = map[string]any{"slug": "bad"} // missing title/author/date
	svc := newTestService(fb)

	posts := svc.ListPosts(context.Background(), true)
	require.Len(t, posts, 1)
	assert.Equal(t, "good", posts[0].Slug)
}

func TestGetPostPublicVisibility(t *testing.T) {
	fb := newFakeBackend()
	addPost(fb, "draft", "draft", "2025-06-01", "")
	svc := newTestService(fb)

	_, err := svc.GetPost(context.Background(), "draft", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPost(context.Background(), "missing", false)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.GetPost(context.Background(), "draft", true)
	require.NoError(t, err)
	assert.Equal(t, "Draft", p.VisibilityLabel)
	assert.False(t, p.IsPublished)
}

func TestSavePostValidation(t *testing.T) {
	svc := newTestService(newFakeBackend())
	sess := adminSession()

	base := PostInput{
		Slug: "post", Title: "Post", Date: "2025-06-01",
		AuthorID: "jo", Status: "published",
	}

	in := base
	in.Status = "live"
	_, err := svc.SavePost(context.Background(), sess, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	in = base
	in.Date = "someday"
	_, err = svc.SavePost(context.Background(), sess, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)

	in = base
	in.Status = "scheduled"
	_, err = svc.SavePost(context.Background(), sess, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "publish_at", verr.Field)

	in.PublishAt = "2026-01-01T00:00:00Z"
	post, err := svc.SavePost(context.Background(), sess, in)
	require.NoError(t, err)
	assert.Equal(t, "Scheduled", post.VisibilityLabel)
}

func TestSavePostEditorPermissions(t *testing.T) {
	fb := newFakeBackend()
	fb.authors = []map[string]any{
		{"id": "jo", "name": "Jo", "admin_user_id": "u-editor"},
		{"id": "max", "name": "Max", "admin_user_id": "u-other"},
	}
	svc := newTestService(fb)

	in := PostInput{
		Slug: "post", Title: "Post", Date: "2025-06-01",
		AuthorID: "max", Status: "draft",
	}
	_, err := svc.SavePost(context.Background(), editorSession(), in)
	var perr *auth.PermissionError
	require.ErrorAs(t, err, &perr)

	in.AuthorID = "jo"
	_, err = svc.SavePost(context.Background(), editorSession(), in)
	assert.NoError(t, err)
}

func TestSavePostEditorWithoutLinkedAuthor(t *testing.T) {
	fb := newFakeBackend()
	fb.authors = []map[string]any{{"id": "max", "name": "Max", "admin_user_id": "u-other"}}
	svc := newTestService(fb)

	in := PostInput{
		Slug: "post", Title: "Post", Date: "2025-06-01",
		AuthorID: "max", Status: "draft",
	}
	_, err := svc.SavePost(context.Background(), editorSession(), in)
	var perr *auth.PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "not linked to an author profile")
}

func TestSavePostRenameDeletesOldSlug(t *testing.T) {
	fb := newFakeBackend()
	addPost(fb, "old-slug", "published", "2025-06-01", "")
	svc := newTestService(fb)

	in := PostInput{
		Slug: "new-slug", OldSlug: "old-slug", Title: "Post",
		Date: "2025-06-01", AuthorID: "jo", Status: "published",
	}
	_, err := svc.SavePost(context.Background(), adminSession(), in)
	require.NoError(t, err)
	assert.Contains(t, fb.deletedSlugs, "old-slug")
	assert.Contains(t, fb.posts, "new-slug")
	assert.NotContains(t, fb.posts, "old-slug")
}

func TestDeletePostRequiresOwnership(t *testing.T) {
	fb := newFakeBackend()
	addPost(fb, "post", "published", "2025-06-01", "")
	fb.authors = []map[string]any{{"id": "max", "name": "Max", "admin_user_id": "u-editor"}}
	svc := newTestService(fb)

	// Post belongs to "jo"; the editor is linked to "max".
	err := svc.DeletePost(context.Background(), editorSession(), "post")
	var perr *auth.PermissionError
	require.ErrorAs(t, err, &perr)

	require.NoError(t, svc.DeletePost(context.Background(), adminSession(), "post"))
	assert.NotContains(t, fb.posts, "post")

	assert.ErrorIs(t, svc.DeletePost(context.Background(), adminSession(), "post"), ErrNotFound)
}

func TestGetContentFallsBackToDefaults(t *testing.T) {
	fb := newFakeBackend()
	fb.cmsErr = errors.New("backend down")
	svc := newTestService(fb)

	got := svc.GetContent(context.Background())
	assert.Equal(t, "Halcyon", got.Site.Name)
	assert.NotEmpty(t, got.Newsletter.SuccessMessage)
}

func TestGetContentSanitizesStoredDocument(t *testing.T) {
	fb := newFakeBackend()
	fb.cmsDoc = map[string]any{"site": map[string]any{"name": "Tidepool"}}
	svc := newTestService(fb)

	got := svc.GetContent(context.Background())
	assert.Equal(t, "Tidepool", got.Site.Name)
	assert.NotEmpty(t, got.Site.URL)
}

func TestSaveContentAdminOnly(t *testing.T) {
	fb := newFakeBackend()
	svc := newTestService(fb)

	_, err := svc.SaveContent(context.Background(), editorSession(), map[string]any{})
	var perr *auth.PermissionError
	require.ErrorAs(t, err, &perr)

	saved, err := svc.SaveContent(context.Background(), adminSession(), map[string]any{
		"site": map[string]any{"name": "Tidepool"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tidepool", saved.Site.Name)
	require.NotNil(t, fb.savedCms)
	assert.Equal(t, "Tidepool", fb.savedCms.Site.Name)
}

func TestSaveAuthorAdminOnly(t *testing.T) {
	svc := newTestService(newFakeBackend())

	in := AuthorInput{ID: "jo", Name: "Jo"}
	_, err := svc.SaveAuthor(context.Background(), editorSession(), in)
	var perr *auth.PermissionError
	require.ErrorAs(t, err, &perr)

	a, err := svc.SaveAuthor(context.Background(), adminSession(), in)
	require.NoError(t, err)
	assert.Equal(t, "Contributor", a.Role)
}
