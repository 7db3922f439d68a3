package inkpost

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

// testViews writes small markers instead of full pages so handler tests can
// assert which component was rendered.
func testViews() ViewFuncs {
	text := func(s string) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, s)
			return err
		})
	}
	return ViewFuncs{
		Home: func(site SiteConfig, posts []Post) templ.Component {
			return text("home posts=" + strconv.Itoa(len(posts)))
		},
		Blog: func(site SiteConfig, posts []Post) templ.Component {
			return text("blog posts=" + strconv.Itoa(len(posts)))
		},
		Post: func(site SiteConfig, post Post) templ.Component {
			return text("post slug=" + post.Slug)
		},
		NotFound:    func(site SiteConfig) templ.Component { return text("page not found") },
		ServerError: func(site SiteConfig) templ.Component { return text("server error") },
	}
}

func setupTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	writePost(t, dir, "first-post.md", postFile("First Post", "2024-01-01", "one"))
	writePost(t, dir, "second-post.md", postFile("Second Post", "2024-02-01", "two"))

	a := New(SiteConfig{
		Name:     "Test Blog",
		URL:      "http://example.com",
		PostsDir: dir,
	}, testViews())

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	a.Store = store
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func get(a *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleHome(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "home posts=2") {
		t.Errorf("home body = %q", rec.Body.String())
	}
}

func TestHandleBlogIndex(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/blog/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog/ status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "blog posts=2") {
		t.Errorf("blog body = %q", rec.Body.String())
	}
}

func TestHandlePost(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/blog/first-post/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog/first-post/ status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "post slug=first-post") {
		t.Errorf("post body = %q", rec.Body.String())
	}
}

func TestHandlePostNotFound(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/blog/no-such-post/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "page not found") {
		t.Errorf("404 body = %q, want the NotFound view", rec.Body.String())
	}
}

func TestUnknownRouteRenders404Page(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/definitely-not-a-route/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "page not found") {
		t.Errorf("404 body = %q, want the NotFound view", rec.Body.String())
	}
}

func TestHandleFeed(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /feed.xml status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<rss") || !strings.Contains(body, "First Post") {
		t.Errorf("feed body missing posts: %q", body)
	}
	// Newest first in the feed as well.
	if strings.Index(body, "Second Post") > strings.Index(body, "First Post") {
		t.Error("feed items should be ordered newest first")
	}
}

func TestHandleSitemap(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "http://example.com/blog/first-post/") {
		t.Errorf("sitemap missing post URL: %q", body)
	}
	if !strings.Contains(body, "http://example.com/blog/") {
		t.Errorf("sitemap missing blog index URL: %q", body)
	}
}

func TestHandleRobots(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /robots.txt status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sitemap: http://example.com/sitemap.xml") {
		t.Errorf("robots body = %q", rec.Body.String())
	}
}

func TestCacheControlHeaders(t *testing.T) {
	a := setupTestApp(t)
	tests := []struct {
		target string
		want   string
	}{
		{"/feed.xml", "public, max-age=86400"},
		{"/", "public, max-age=3600"},
	}
	for _, tt := range tests {
		rec := get(a, tt.target)
		if got := rec.Header().Get("Cache-Control"); got != tt.want {
			t.Errorf("Cache-Control for %s = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := setupTestApp(t)
	rec := get(a, "/blog/first-post")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/first-post/" {
		t.Errorf("Location = %q, want %q", loc, "/blog/first-post/")
	}
}
