package sanitize

import (
	"reflect"
	"testing"
)

func TestCmsContentNilYieldsDefaults(t *testing.T) {
	for _, v := range []any{nil, "garbage", 42, []any{"list"}} {
		got := CmsContent(v)
		if !reflect.DeepEqual(got, DefaultContent()) {
			t.Errorf("CmsContent(%v) should equal defaults", v)
		}
	}
}

func TestCmsContentPartialOverride(t *testing.T) {
	got := CmsContent(map[string]any{
		"site": map[string]any{
			"name": "Tidepool",
			"url":  "javascript:alert(1)", // invalid, keeps default
		},
		"newsletter": map[string]any{
			"title": "  Join us  ",
		},
	})

	def := DefaultContent()
	if got.Site.Name != "Tidepool" {
		t.Errorf("site name not overridden: %q", got.Site.Name)
	}
	if got.Site.URL != def.Site.URL {
		t.Errorf("invalid URL should keep default, got %q", got.Site.URL)
	}
	if got.Newsletter.Title != "Join us" {
		t.Errorf("newsletter title not trimmed/overridden: %q", got.Newsletter.Title)
	}
	if got.Newsletter.SuccessMessage != def.Newsletter.SuccessMessage {
		t.Errorf("untouched field should keep default: %q", got.Newsletter.SuccessMessage)
	}
	if !reflect.DeepEqual(got.Header, def.Header) {
		t.Error("untouched section should keep defaults")
	}
}

func TestCmsContentEmptyLinkListKeepsDefaults(t *testing.T) {
	got := CmsContent(map[string]any{
		"header": map[string]any{
			"links": []any{map[string]any{"label": "", "href": ""}},
		},
	})
	if len(got.Header.Links) != len(DefaultContent().Header.Links) {
		t.Errorf("all-invalid links should keep defaults, got %+v", got.Header.Links)
	}
}

func TestDefaultContentCopyIsIsolated(t *testing.T) {
	c := DefaultContent()
	c.Header.Links[0].Label = "mutated"
	if DefaultContent().Header.Links[0].Label == "mutated" {
		t.Error("DefaultContent must return an isolated copy")
	}
}

func TestDefaultContentComplete(t *testing.T) {
	def := DefaultContent()
	if def.Site.Name == "" || def.Site.URL == "" ||
		def.Home.HeroTitle == "" || def.Newsletter.SuccessMessage == "" {
		t.Errorf("default table has empty required copy: %+v", def)
	}
}
