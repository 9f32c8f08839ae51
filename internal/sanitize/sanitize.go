// Package sanitize is the contract boundary between the hosted backend and
// the rest of the application. The backend stores free-form JSON with no
// compile-time guarantees, so every read path runs its rows through one of
// these functions: untrusted input in, fully populated typed record out.
// Nothing in this package panics or returns a zero required field.
package sanitize

import (
	"net/url"
	"strings"
	"time"

	"github.com/halcyonpress/halcyon/internal/models"
)

// String returns v if it is a non-blank string, the fallback otherwise.
// Leading and trailing whitespace is trimmed.
func String(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// OptionalString is String with an empty fallback, for fields that may
// legitimately be absent.
func OptionalString(v any) string {
	return String(v, "")
}

// URL accepts only absolute http/https URLs and strips a single trailing
// slash. Anything else yields the fallback.
func URL(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fallback
	}
	return strings.TrimSuffix(s, "/")
}

// StrictBool carries a stored boolean through only when it is strictly true.
// Truthy strings and numbers do not count.
func StrictBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// Links drops entries that are not objects or whose label/href are blank
// after trimming, preserving input order.
func Links(v any) []models.LinkItem {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.LinkItem, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		label := OptionalString(m["label"])
		href := OptionalString(m["href"])
		if label == "" || href == "" {
			continue
		}
		out = append(out, models.LinkItem{
			Label:    label,
			Href:     href,
			External: StrictBool(m["external"]),
		})
	}
	return out
}

// SocialLinks keeps entries with a platform name and a valid http(s) URL.
func SocialLinks(v any) []models.SocialLink {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.SocialLink, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		platform := OptionalString(m["platform"])
		u := URL(m["url"], "")
		if platform == "" || u == "" {
			continue
		}
		out = append(out, models.SocialLink{Platform: platform, URL: u})
	}
	return out
}

// timeFormats are tried in order when parsing stored timestamps. The backend
// writes RFC 3339 but legacy rows carry date-only values.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses a stored timestamp value. The second return is false when the
// value is not a string or matches no known layout.
func Time(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
