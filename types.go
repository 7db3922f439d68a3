package inkpost

import "time"

// Post is the core content type, parsed from one file in the posts
// directory and rendered by templates.
type Post struct {
	Slug        string
	Title       string
	PublishedAt time.Time
	Summary     string
	Image       string // optional header image path or URL
	Link        string
	Body        string // raw markdown, rendered at view time
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	Image       string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
