package models

// PostStatus is the stored publication status of a post. Whether a post is
// actually visible to the public also depends on PublishAt and the clock, see
// the content package.
type PostStatus string

const (
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
)

// Post is a blog post as stored in the backend. Slug is the stable identity;
// a rename is modeled as delete+recreate keyed by the old slug.
type Post struct {
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Excerpt        string     `json:"excerpt"`
	Date           string     `json:"date"`
	Category       string     `json:"category"`
	AuthorID       string     `json:"author_id"`
	CoverImage     string     `json:"cover_image"`
	CoverAlt       string     `json:"cover_alt"`
	Status         PostStatus `json:"status"`
	PublishAt      string     `json:"publish_at,omitempty"`
	SeoTitle       string     `json:"seo_title,omitempty"`
	SeoDescription string     `json:"seo_description,omitempty"`
	FocusKeyword   string     `json:"focus_keyword,omitempty"`
	Featured       bool       `json:"featured"`
	Recommended    bool       `json:"recommended"`
	Content        string     `json:"content"`

	// Derived fields, never stored.
	ReadingTimeMinutes int    `json:"reading_time_minutes,omitempty"`
	ReadingTimeText    string `json:"reading_time_text,omitempty"`
	IsPublished        bool   `json:"is_published"`
	VisibilityLabel    string `json:"visibility_label,omitempty"`
}

// Author is a content author. AdminUserID optionally links the author to an
// admin session identity, which is how editor-role access is scoped.
type Author struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	ShortBio    string `json:"short_bio"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	XURL        string `json:"x_url,omitempty"`
	AdminUserID string `json:"admin_user_id,omitempty"`
}
