// Package views provides the default templ components for inkpost pages.
// Components are built in plain Go with templ.ComponentFunc so sites can
// swap any of them out through inkpost.ViewFuncs.
package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/halvard/inkpost"
	"github.com/halvard/inkpost/markdown"
)

// Default returns the stock view set for inkpost.New.
func Default() inkpost.ViewFuncs {
	return inkpost.ViewFuncs{
		Home:        Home,
		Blog:        Blog,
		Post:        Post,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

// FormatDate renders a publication date the way the templates show it.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Home renders the site landing page: an intro plus the most recent posts.
func Home(site inkpost.SiteConfig, posts []inkpost.Post) templ.Component {
	meta := inkpost.PageMeta{
		Title:       site.Name,
		Description: site.Description,
		URL:         inkpost.BuildURL(site.URL),
		OGType:      "website",
	}
	return layout(site, meta, inkpost.WebsiteJsonLD(site), func(ctx context.Context, w io.Writer) error {
		writeString(w, `<section class="hero"><h1>`+html.EscapeString(site.Name)+`</h1>`)
		if site.Description != "" {
			writeString(w, `<p>`+html.EscapeString(site.Description)+`</p>`)
		}
		writeString(w, `</section>`)

		recent := posts
		if len(recent) > 5 {
			recent = recent[:5]
		}
		writeString(w, `<section class="recent"><h2>Latest posts</h2>`)
		if err := postList(recent).Render(ctx, w); err != nil {
			return err
		}
		writeString(w, `<p><a href="/blog/">All posts &rarr;</a></p></section>`)
		return nil
	})
}

// Blog renders the full post index, newest first.
func Blog(site inkpost.SiteConfig, posts []inkpost.Post) templ.Component {
	meta := inkpost.PageMeta{
		Title:       "Blog · " + site.Name,
		Description: site.Description,
		URL:         inkpost.BuildURL(site.URL, "blog"),
		OGType:      "website",
	}
	return layout(site, meta, "", func(ctx context.Context, w io.Writer) error {
		writeString(w, `<h1>Blog</h1>`)
		return postList(posts).Render(ctx, w)
	})
}

// Post renders a single post page with its markdown body.
func Post(site inkpost.SiteConfig, post inkpost.Post) templ.Component {
	meta := inkpost.PageMeta{
		Title:       post.Title + " · " + site.Name,
		Description: post.Summary,
		Image:       post.Image,
		URL:         inkpost.BuildURL(site.URL, "blog", post.Slug),
		OGType:      "article",
	}
	return layout(site, meta, inkpost.BlogPostingJsonLD(post, site), func(ctx context.Context, w io.Writer) error {
		writeString(w, `<article class="post">`)
		writeString(w, `<h1>`+html.EscapeString(post.Title)+`</h1>`)
		writeString(w, `<p class="post-date"><time datetime="`+post.PublishedAt.Format("2006-01-02")+`">`+
			FormatDate(post.PublishedAt)+`</time></p>`)
		if post.Image != "" {
			writeString(w, `<img class="post-image" src="`+html.EscapeString(post.Image)+
				`" alt="`+html.EscapeString(post.Title)+`"/>`)
		}
		if err := markdown.Markdown(post.Body).Render(ctx, w); err != nil {
			return err
		}
		writeString(w, `</article>`)
		return nil
	})
}

// NotFound renders the 404 page.
func NotFound(site inkpost.SiteConfig) templ.Component {
	meta := inkpost.PageMeta{
		Title:  "Not found · " + site.Name,
		URL:    inkpost.BuildURL(site.URL),
		OGType: "website",
	}
	return layout(site, meta, "", func(ctx context.Context, w io.Writer) error {
		writeString(w, `<section class="error-page"><h1>404</h1>`)
		writeString(w, `<p>That page does not exist.</p>`)
		writeString(w, `<p><a href="/">Back to the front page</a></p></section>`)
		return nil
	})
}

// ServerError renders the 500 page.
func ServerError(site inkpost.SiteConfig) templ.Component {
	meta := inkpost.PageMeta{
		Title:  "Something went wrong · " + site.Name,
		URL:    inkpost.BuildURL(site.URL),
		OGType: "website",
	}
	return layout(site, meta, "", func(ctx context.Context, w io.Writer) error {
		writeString(w, `<section class="error-page"><h1>500</h1>`)
		writeString(w, `<p>Something went wrong. Try again in a moment.</p></section>`)
		return nil
	})
}

// postList renders posts as a linked list with dates and summaries.
func postList(posts []inkpost.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(posts) == 0 {
			writeString(w, `<p class="empty">Nothing here yet.</p>`)
			return nil
		}
		writeString(w, `<ul class="post-list">`)
		for _, p := range posts {
			writeString(w, `<li><time datetime="`+p.PublishedAt.Format("2006-01-02")+`">`+
				FormatDate(p.PublishedAt)+`</time> <a href="`+html.EscapeString(p.Link)+`">`+
				html.EscapeString(p.Title)+`</a>`)
			if p.Summary != "" {
				writeString(w, `<p class="summary">`+html.EscapeString(p.Summary)+`</p>`)
			}
			writeString(w, `</li>`)
		}
		writeString(w, `</ul>`)
		return nil
	})
}

// layout wraps page content with the shared head, nav, and footer. The page
// is assembled in a buffer and written out once, like markdown.Markdown.
func layout(site inkpost.SiteConfig, meta inkpost.PageMeta, jsonLD string, body func(context.Context, io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		var buf bytes.Buffer
		w := &buf
		title := html.EscapeString(meta.Title)
		writeString(w, `<!DOCTYPE html><html lang="en"><head>`)
		writeString(w, `<meta charset="utf-8"/>`)
		writeString(w, `<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		writeString(w, `<title>`+title+`</title>`)
		if meta.Description != "" {
			writeString(w, `<meta name="description" content="`+html.EscapeString(meta.Description)+`"/>`)
		}
		writeString(w, `<link rel="canonical" href="`+html.EscapeString(meta.URL)+`"/>`)
		writeString(w, `<link rel="alternate" type="application/rss+xml" title="`+html.EscapeString(site.Name)+`" href="/feed.xml"/>`)
		writeString(w, `<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
		writeString(w, `<link rel="stylesheet" href="/public/styles.css"/>`)
		writeString(w, `<meta property="og:title" content="`+title+`"/>`)
		writeString(w, `<meta property="og:type" content="`+html.EscapeString(meta.OGType)+`"/>`)
		writeString(w, `<meta property="og:url" content="`+html.EscapeString(meta.URL)+`"/>`)
		if meta.Description != "" {
			writeString(w, `<meta property="og:description" content="`+html.EscapeString(meta.Description)+`"/>`)
		}
		if meta.Image != "" {
			writeString(w, `<meta property="og:image" content="`+html.EscapeString(meta.Image)+`"/>`)
		}
		if jsonLD != "" {
			writeString(w, `<script type="application/ld+json">`+jsonLD+`</script>`)
		}
		writeString(w, `</head><body>`)
		writeString(w, `<header class="site-header"><nav>`)
		writeString(w, `<a class="site-name" href="/">`+html.EscapeString(site.Name)+`</a>`)
		writeString(w, `<a href="/blog/">Blog</a>`)
		writeString(w, `</nav></header><main>`)
		if err := body(ctx, w); err != nil {
			return err
		}
		writeString(w, `</main><footer class="site-footer">`)
		if site.Author != "" {
			writeString(w, `<p>&copy; `+html.EscapeString(site.Author)+`</p>`)
		}
		writeString(w, `<p><a href="/feed.xml">RSS</a></p>`)
		writeString(w, `</footer></body></html>`)
		_, err := out.Write(buf.Bytes())
		return err
	})
}

func writeString(w io.Writer, s string) {
	io.WriteString(w, s)
}
