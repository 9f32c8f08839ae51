// Package analytics records page-view beacons and serves the admin summary.
// The beacon endpoint is deliberately forgiving: it validates input but
// never surfaces an internal failure to the browser.
package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/metrics"
	"github.com/halcyonpress/halcyon/internal/models"
	"github.com/halcyonpress/halcyon/internal/sanitize"
)

const (
	// MaxPathLen bounds the tracked path.
	MaxPathLen     = 300
	maxReferrerLen = 600
	maxUserAgent   = 512
)

// ErrInvalidPath covers every rejected beacon path.
var ErrInvalidPath = errors.New("analytics: invalid path")

// ValidatePath accepts only site-relative paths: non-empty, at most
// MaxPathLen characters, exactly one leading slash. A double slash would be
// interpreted by browsers as a protocol-relative URL, so it is rejected.
func ValidatePath(p string) error {
	if p == "" || len(p) > MaxPathLen {
		return ErrInvalidPath
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return ErrInvalidPath
	}
	return nil
}

// HashIP stores visitor IPs only as SHA-256 digests.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}

// PageViewStore is the slice of the backend this package needs.
type PageViewStore interface {
	InsertPageView(ctx context.Context, v models.PageView) error
	ListRecentPageViews(ctx context.Context, limit int) ([]map[string]any, error)
}

// Tracker validates and persists beacons.
type Tracker struct {
	store PageViewStore
	now   func() time.Time
}

func NewTracker(store PageViewStore) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Track records one page view. The path must already be validated.
func (t *Tracker) Track(ctx context.Context, path, referrer, ip, userAgent string) error {
	if len(referrer) > maxReferrerLen {
		referrer = referrer[:maxReferrerLen]
	}
	if len(userAgent) > maxUserAgent {
		userAgent = userAgent[:maxUserAgent]
	}

	view := models.PageView{
		ID:        uuid.NewString(),
		Path:      path,
		Referrer:  referrer,
		IPHash:    HashIP(ip),
		UserAgent: userAgent,
		CreatedAt: t.now().UTC(),
	}
	if err := t.store.InsertPageView(ctx, view); err != nil {
		metrics.BackendErrors.WithLabelValues("page_views").Inc()
		return err
	}
	metrics.PageViewsTracked.Inc()
	return nil
}

// PathCount is one row of the admin summary.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Summary aggregates recent page views for the admin dashboard.
type Summary struct {
	TotalViews int         `json:"total_views"`
	TopPaths   []PathCount `json:"top_paths"`
}

// summaryWindow bounds how many recent rows feed the summary. Aggregation
// happens in-process because the REST contract has no aggregate queries.
const summaryWindow = 5000

// Summarize builds the admin view-count summary. Admin only.
func (t *Tracker) Summarize(ctx context.Context, sess *auth.Session) (Summary, error) {
	if err := auth.CanManageSite(sess).Err(); err != nil {
		return Summary{}, err
	}

	rows, err := t.store.ListRecentPageViews(ctx, summaryWindow)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("page_views").Inc()
		return Summary{}, err
	}

	counts := map[string]int{}
	total := 0
	for _, row := range rows {
		path := sanitize.OptionalString(row["path"])
		if path == "" {
			continue
		}
		counts[path]++
		total++
	}

	top := make([]PathCount, 0, len(counts))
	for path, count := range counts {
		top = append(top, PathCount{Path: path, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Path < top[j].Path
	})
	if len(top) > 20 {
		top = top[:20]
	}

	return Summary{TotalViews: total, TopPaths: top}, nil
}
