package sanitize

import "github.com/halcyonpress/halcyon/internal/models"

// defaultContent is the fallback value table applied field by field whenever
// the stored CMS document is missing, malformed, or partially invalid. It is
// package-private; callers obtain a copy through DefaultContent so the table
// itself is never mutated.
var defaultContent = models.CmsContent{
	Site: models.SiteConfig{
		Name:    "Halcyon",
		URL:     "https://halcyon.press",
		Tagline: "Notes on building calmer software",
	},
	Header: models.HeaderContent{
		Links: []models.LinkItem{
			{Label: "Home", Href: "/"},
			{Label: "Latest", Href: "/latest"},
			{Label: "Authors", Href: "/authors"},
			{Label: "About", Href: "/about"},
		},
		CtaLabel: "Subscribe",
		CtaHref:  "/#newsletter",
	},
	Footer: models.FooterContent{
		About:     "Halcyon is an independent publication about software, design and the people who make both.",
		Links:     []models.LinkItem{{Label: "Privacy", Href: "/privacy"}},
		Social:    []models.SocialLink{},
		Copyright: "© Halcyon. All rights reserved.",
	},
	Home: models.HomeContent{
		HeroTitle:    "Calmer software, better stories",
		HeroSubtitle: "Essays and field notes from the Halcyon team.",
		HeroCtaLabel: "Read the latest",
		HeroCtaHref:  "/latest",
	},
	About: models.AboutContent{
		Title: "About Halcyon",
		Intro: "We write about the craft of building software that respects its users.",
		Body:  "Halcyon started as an internal engineering journal and grew into a public publication.",
	},
	Latest: models.SectionContent{
		Title:    "Latest posts",
		Subtitle: "Fresh from the team",
	},
	Authors: models.SectionContent{
		Title:    "Our authors",
		Subtitle: "The people behind the posts",
	},
	Newsletter: models.NewsletterContent{
		Title:          "Stay in the loop",
		Subtitle:       "One email a week. No spam, ever.",
		ButtonLabel:    "Subscribe",
		SuccessMessage: "Thanks for subscribing! Check your inbox to confirm.",
	},
}

// DefaultContent returns a copy of the default CMS content table. Slice fields
// are copied so callers cannot alter the shared defaults.
func DefaultContent() models.CmsContent {
	c := defaultContent
	c.Header.Links = append([]models.LinkItem(nil), defaultContent.Header.Links...)
	c.Footer.Links = append([]models.LinkItem(nil), defaultContent.Footer.Links...)
	c.Footer.Social = append([]models.SocialLink(nil), defaultContent.Footer.Social...)
	return c
}
