// Package content owns post visibility and the read/write services that sit
// between the HTTP layer and the hosted backend.
package content

import (
	"sort"
	"time"

	"github.com/halcyonpress/halcyon/internal/models"
	"github.com/halcyonpress/halcyon/internal/sanitize"
)

// Visibility is the derived publication state of a post. It is a pure
// function of (status, publish_at, now), recomputed on every read; nothing
// transitions rows in storage.
type Visibility string

const (
	VisibilityDraft            Visibility = "draft"
	VisibilityScheduledPending Visibility = "scheduled-pending"
	VisibilityScheduledLive    Visibility = "scheduled-live"
	VisibilityPublished        Visibility = "published"
)

// Resolve derives a post's visibility at the given instant. Draft is never
// live regardless of any other field. A scheduled post without a parseable
// publish time stays pending forever.
func Resolve(status models.PostStatus, publishAt string, now time.Time) Visibility {
	switch status {
	case models.StatusPublished:
		return VisibilityPublished
	case models.StatusScheduled:
		t, ok := sanitize.Time(publishAt)
		if ok && !t.After(now) {
			return VisibilityScheduledLive
		}
		return VisibilityScheduledPending
	default:
		return VisibilityDraft
	}
}

// IsLive reports whether a post is visible to the public.
func IsLive(status models.PostStatus, publishAt string, now time.Time) bool {
	v := Resolve(status, publishAt, now)
	return v == VisibilityPublished || v == VisibilityScheduledLive
}

// Label is the admin-facing name of a visibility state. Live scheduled posts
// read as published; only pending ones are called out.
func Label(v Visibility) string {
	switch v {
	case VisibilityDraft:
		return "Draft"
	case VisibilityScheduledPending:
		return "Scheduled"
	default:
		return "Published"
	}
}

// EffectiveTime is the timestamp a post sorts by: publish_at for scheduled
// posts (so a future-dated post sorts by its eventual date, not the edit
// date), the stored date otherwise. Unparseable values sort as the epoch,
// i.e. oldest.
func EffectiveTime(p models.Post) time.Time {
	raw := p.Date
	if p.Status == models.StatusScheduled && p.PublishAt != "" {
		raw = p.PublishAt
	}
	t, ok := sanitize.Time(raw)
	if !ok {
		return time.Unix(0, 0).UTC()
	}
	return t
}

// SortPosts orders posts descending by effective timestamp, in place.
func SortPosts(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return EffectiveTime(posts[i]).After(EffectiveTime(posts[j]))
	})
}
