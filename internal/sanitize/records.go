package sanitize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/halcyonpress/halcyon/internal/models"
)

// Post validates the minimal shape of a stored post row and fills defaults
// for everything else. Rows missing slug, title, author id or date fail
// validation and are dropped from listings by the caller.
func Post(v any) (models.Post, bool) {
	row, ok := asMap(v)
	if !ok {
		return models.Post{}, false
	}
	slug := OptionalString(row["slug"])
	title := OptionalString(row["title"])
	authorID := OptionalString(row["author_id"])
	date := OptionalString(row["date"])
	if slug == "" || title == "" || authorID == "" || date == "" {
		return models.Post{}, false
	}

	p := models.Post{
		Slug:           slug,
		Title:          title,
		Excerpt:        OptionalString(row["excerpt"]),
		Date:           date,
		Category:       String(row["category"], "general"),
		AuthorID:       authorID,
		CoverImage:     OptionalString(row["cover_image"]),
		CoverAlt:       OptionalString(row["cover_alt"]),
		Status:         postStatus(row["status"]),
		PublishAt:      OptionalString(row["publish_at"]),
		SeoTitle:       OptionalString(row["seo_title"]),
		SeoDescription: OptionalString(row["seo_description"]),
		FocusKeyword:   OptionalString(row["focus_keyword"]),
		Featured:       StrictBool(row["featured"]),
		Recommended:    StrictBool(row["recommended"]),
		Content:        OptionalString(row["content"]),
	}
	p.ReadingTimeMinutes, p.ReadingTimeText = ReadingTime(p.Content)
	return p, true
}

// postStatus normalizes the stored status. Anything unrecognized becomes
// draft, which is never live.
func postStatus(v any) models.PostStatus {
	switch models.PostStatus(OptionalString(v)) {
	case models.StatusPublished:
		return models.StatusPublished
	case models.StatusScheduled:
		return models.StatusScheduled
	default:
		return models.StatusDraft
	}
}

// ReadingTime derives display reading time from raw markdown at 200 words
// per minute, rounding up with a floor of one minute.
func ReadingTime(content string) (int, string) {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes, strconv.Itoa(minutes) + " min read"
}

// Author validates a stored author row.
func Author(v any) (models.Author, bool) {
	row, ok := asMap(v)
	if !ok {
		return models.Author{}, false
	}
	id := OptionalString(row["id"])
	name := OptionalString(row["name"])
	if id == "" || name == "" {
		return models.Author{}, false
	}
	return models.Author{
		ID:          id,
		Name:        name,
		Role:        String(row["role"], "Contributor"),
		ShortBio:    OptionalString(row["short_bio"]),
		Bio:         OptionalString(row["bio"]),
		Avatar:      OptionalString(row["avatar"]),
		XURL:        URL(row["x_url"], ""),
		AdminUserID: OptionalString(row["admin_user_id"]),
	}, true
}

// MediaAsset validates a stored media row and derives file name, extension,
// directory and kind from the object path.
func MediaAsset(v any) (models.MediaAsset, bool) {
	row, ok := asMap(v)
	if !ok {
		return models.MediaAsset{}, false
	}
	objectPath := OptionalString(row["object_path"])
	if objectPath == "" || !models.SafeObjectPath(objectPath) {
		return models.MediaAsset{}, false
	}

	fileName := objectPath
	directory := ""
	if i := strings.LastIndex(objectPath, "/"); i >= 0 {
		fileName = objectPath[i+1:]
		directory = objectPath[:i]
	}
	extension := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		extension = strings.ToLower(fileName[i+1:])
	}

	asset := models.MediaAsset{
		ObjectPath: objectPath,
		PublicURL:  URL(row["public_url"], ""),
		FileName:   fileName,
		Extension:  extension,
		Directory:  directory,
		Kind:       models.KindFromObjectPath(objectPath),
	}
	if size, ok := row["size_bytes"].(float64); ok && size >= 0 {
		asset.SizeBytes = int64(size)
	}
	if t, ok := Time(row["modified_at"]); ok {
		asset.ModifiedAt = t
	}
	return asset, true
}

// Subscriber validates a stored subscriber row. Rows without id, email or a
// parseable submission time are dropped.
func Subscriber(v any) (models.NewsletterSubscriber, bool) {
	row, ok := asMap(v)
	if !ok {
		return models.NewsletterSubscriber{}, false
	}
	id := OptionalString(row["id"])
	email := strings.ToLower(OptionalString(row["email"]))
	submittedAt, tok := Time(row["submitted_at"])
	if id == "" || email == "" || !tok {
		return models.NewsletterSubscriber{}, false
	}
	return models.NewsletterSubscriber{
		ID:          id,
		Email:       email,
		SubmittedAt: submittedAt,
		SourcePath:  OptionalString(row["source_path"]),
	}, true
}

// Subscribers parses a list of subscriber rows, discarding invalid entries
// and re-sorting descending by submission time.
func Subscribers(rows []map[string]any) []models.NewsletterSubscriber {
	out := make([]models.NewsletterSubscriber, 0, len(rows))
	for _, row := range rows {
		if sub, ok := Subscriber(row); ok {
			out = append(out, sub)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}
