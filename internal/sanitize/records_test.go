package sanitize

import (
	"strings"
	"testing"
	"time"

	"github.com/halcyonpress/halcyon/internal/models"
)

func validPostRow() map[string]any {
	return map[string]any{
		"slug":      "first-post",
		"title":     "First Post",
		"author_id": "jo",
		"date":      "2025-06-01",
		"status":    "published",
	}
}

func TestPostRequiredFields(t *testing.T) {
	for _, field := range []string{"slug", "title", "author_id", "date"} {
		row := validPostRow()
		delete(row, field)
		if _, ok := Post(row); ok {
			t.Errorf("expected row without %s to be rejected", field)
		}
	}
	if _, ok := Post("not a map"); ok {
		t.Error("expected non-map row to be rejected")
	}
	if _, ok := Post(validPostRow()); !ok {
		t.Error("expected valid row to pass")
	}
}

func TestPostStatusFallsBackToDraft(t *testing.T) {
	row := validPostRow()
	row["status"] = "live" // not a known status
	p, ok := Post(row)
	if !ok {
		t.Fatal("expected row to pass")
	}
	if p.Status != models.StatusDraft {
		t.Errorf("expected unknown status to become draft, got %q", p.Status)
	}

	delete(row, "status")
	p, _ = Post(row)
	if p.Status != models.StatusDraft {
		t.Errorf("expected missing status to become draft, got %q", p.Status)
	}
}

func TestPostCategoryDefault(t *testing.T) {
	p, _ := Post(validPostRow())
	if p.Category != "general" {
		t.Errorf("expected default category general, got %q", p.Category)
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words   int
		minutes int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tc := range cases {
		content := strings.TrimSpace(strings.Repeat("word ", tc.words))
		minutes, text := ReadingTime(content)
		if minutes != tc.minutes {
			t.Errorf("ReadingTime(%d words) = %d, want %d", tc.words, minutes, tc.minutes)
		}
		if !strings.HasSuffix(text, " min read") {
			t.Errorf("unexpected reading time text %q", text)
		}
	}
}

func TestAuthorDefaults(t *testing.T) {
	a, ok := Author(map[string]any{"id": "jo", "name": "Jo Doe"})
	if !ok {
		t.Fatal("expected minimal author to pass")
	}
	if a.Role != "Contributor" {
		t.Errorf("expected default role Contributor, got %q", a.Role)
	}
	if _, ok := Author(map[string]any{"id": "jo"}); ok {
		t.Error("expected author without name to be rejected")
	}
}

func TestMediaAssetDerivedFields(t *testing.T) {
	row := map[string]any{
		"object_path": "images/posts/cover.JPG",
		"size_bytes":  float64(1234),
		"modified_at": "2025-06-01T10:00:00Z",
	}
	asset, ok := MediaAsset(row)
	if !ok {
		t.Fatal("expected asset to pass")
	}
	if asset.FileName != "cover.JPG" || asset.Directory != "images/posts" {
		t.Errorf("derived path fields wrong: %+v", asset)
	}
	if asset.Extension != "jpg" {
		t.Errorf("expected lowercase extension, got %q", asset.Extension)
	}
	if asset.Kind != models.MediaKindPosts {
		t.Errorf("expected kind posts, got %q", asset.Kind)
	}
	if asset.SizeBytes != 1234 {
		t.Errorf("size wrong: %d", asset.SizeBytes)
	}

	if _, ok := MediaAsset(map[string]any{"object_path": "../etc/passwd"}); ok {
		t.Error("expected traversal path to be rejected")
	}
}

func TestSubscribersDropAndSort(t *testing.T) {
	rows := []map[string]any{
		{"id": "a", "email": "A@Example.com", "submitted_at": "2025-01-01T00:00:00Z"},
		{"id": "b", "email": "b@example.com", "submitted_at": "2025-03-01T00:00:00Z"},
		{"id": "", "email": "missing-id@example.com", "submitted_at": "2025-02-01T00:00:00Z"},
		{"id": "c", "email": "c@example.com", "submitted_at": "not a date"},
	}
	subs := Subscribers(rows)
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(subs))
	}
	if subs[0].ID != "b" || subs[1].ID != "a" {
		t.Errorf("expected newest first, got %+v", subs)
	}
	if subs[1].Email != "a@example.com" {
		t.Errorf("expected lowercased email, got %q", subs[1].Email)
	}
	if !subs[0].SubmittedAt.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("submitted_at wrong: %v", subs[0].SubmittedAt)
	}
}
