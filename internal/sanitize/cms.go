package sanitize

import "github.com/halcyonpress/halcyon/internal/models"

// CmsContent maps an arbitrary stored value onto a complete CMS content
// record. Every field not present and valid in the input comes from the
// default table, so required copy is never empty regardless of what the
// backend returns.
func CmsContent(v any) models.CmsContent {
	out := DefaultContent()
	root, ok := asMap(v)
	if !ok {
		return out
	}

	if site, ok := asMap(root["site"]); ok {
		out.Site.Name = String(site["name"], out.Site.Name)
		out.Site.URL = URL(site["url"], out.Site.URL)
		out.Site.Tagline = String(site["tagline"], out.Site.Tagline)
	}

	if header, ok := asMap(root["header"]); ok {
		if links := Links(header["links"]); len(links) > 0 {
			out.Header.Links = links
		}
		out.Header.CtaLabel = String(header["cta_label"], out.Header.CtaLabel)
		out.Header.CtaHref = String(header["cta_href"], out.Header.CtaHref)
	}

	if footer, ok := asMap(root["footer"]); ok {
		out.Footer.About = String(footer["about"], out.Footer.About)
		if links := Links(footer["links"]); len(links) > 0 {
			out.Footer.Links = links
		}
		if social := SocialLinks(footer["social"]); len(social) > 0 {
			out.Footer.Social = social
		}
		out.Footer.Copyright = String(footer["copyright"], out.Footer.Copyright)
	}

	if home, ok := asMap(root["home"]); ok {
		out.Home.HeroTitle = String(home["hero_title"], out.Home.HeroTitle)
		out.Home.HeroSubtitle = String(home["hero_subtitle"], out.Home.HeroSubtitle)
		out.Home.HeroCtaLabel = String(home["hero_cta_label"], out.Home.HeroCtaLabel)
		out.Home.HeroCtaHref = String(home["hero_cta_href"], out.Home.HeroCtaHref)
	}

	if about, ok := asMap(root["about"]); ok {
		out.About.Title = String(about["title"], out.About.Title)
		out.About.Intro = String(about["intro"], out.About.Intro)
		out.About.Body = String(about["body"], out.About.Body)
	}

	if latest, ok := asMap(root["latest"]); ok {
		out.Latest.Title = String(latest["title"], out.Latest.Title)
		out.Latest.Subtitle = String(latest["subtitle"], out.Latest.Subtitle)
	}

	if authors, ok := asMap(root["authors"]); ok {
		out.Authors.Title = String(authors["title"], out.Authors.Title)
		out.Authors.Subtitle = String(authors["subtitle"], out.Authors.Subtitle)
	}

	if nl, ok := asMap(root["newsletter"]); ok {
		out.Newsletter.Title = String(nl["title"], out.Newsletter.Title)
		out.Newsletter.Subtitle = String(nl["subtitle"], out.Newsletter.Subtitle)
		out.Newsletter.ButtonLabel = String(nl["button_label"], out.Newsletter.ButtonLabel)
		out.Newsletter.SuccessMessage = String(nl["success_message"], out.Newsletter.SuccessMessage)
	}

	return out
}
