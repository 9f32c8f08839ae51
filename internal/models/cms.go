package models

// LinkItem is a labeled navigation or footer link. External is carried through
// sanitization only when the stored value is strictly boolean true.
type LinkItem struct {
	Label    string `json:"label"`
	Href     string `json:"href"`
	External bool   `json:"external,omitempty"`
}

// SocialLink is an icon link in the footer.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// CmsContent is the singleton site configuration document. It is read on
// every page render and must never carry an empty required field; the
// sanitize package guarantees that by substituting defaults.
type CmsContent struct {
	Site       SiteConfig        `json:"site"`
	Header     HeaderContent     `json:"header"`
	Footer     FooterContent     `json:"footer"`
	Home       HomeContent       `json:"home"`
	About      AboutContent      `json:"about"`
	Latest     SectionContent    `json:"latest"`
	Authors    SectionContent    `json:"authors"`
	Newsletter NewsletterContent `json:"newsletter"`
}

type SiteConfig struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Tagline string `json:"tagline"`
}

type HeaderContent struct {
	Links    []LinkItem `json:"links"`
	CtaLabel string     `json:"cta_label"`
	CtaHref  string     `json:"cta_href"`
}

type FooterContent struct {
	About     string       `json:"about"`
	Links     []LinkItem   `json:"links"`
	Social    []SocialLink `json:"social"`
	Copyright string       `json:"copyright"`
}

type HomeContent struct {
	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`
	HeroCtaLabel string `json:"hero_cta_label"`
	HeroCtaHref  string `json:"hero_cta_href"`
}

type AboutContent struct {
	Title string `json:"title"`
	Intro string `json:"intro"`
	Body  string `json:"body"`
}

// SectionContent is the heading copy of a listing page.
type SectionContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type NewsletterContent struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	ButtonLabel    string `json:"button_label"`
	SuccessMessage string `json:"success_message"`
}
