package inkpost

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/halvard/inkpost/frontmatter"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func postFile(title, date, body string) string {
	return "---\ntitle: " + title + "\npublishedAt: " + date + "\n---\n\n" + body + "\n"
}

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s, dir
}

func TestNewStoreMissingDir(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing posts directory")
	}
}

func TestListPostsSortedByDateDescending(t *testing.T) {
	s, dir := setupTestStore(t)

	// File names deliberately disagree with date order.
	writePost(t, dir, "alpha.md", postFile("Alpha", "2024-01-01", "a"))
	writePost(t, dir, "bravo.md", postFile("Bravo", "2025-07-30", "b"))
	writePost(t, dir, "charlie.md", postFile("Charlie", "2023-05-05", "c"))

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ListPosts count = %d, want 3", len(posts))
	}
	wantOrder := []string{"bravo", "alpha", "charlie"}
	for i, slug := range wantOrder {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d].Slug = %q, want %q", i, posts[i].Slug, slug)
		}
	}
}

func TestListPostsStableOnEqualDates(t *testing.T) {
	s, dir := setupTestStore(t)

	writePost(t, dir, "first.md", postFile("First", "2024-06-01", "a"))
	writePost(t, dir, "second.md", postFile("Second", "2024-06-01", "b"))

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	// Discovery order is directory order; ties must keep it.
	if posts[0].Slug != "first" || posts[1].Slug != "second" {
		t.Errorf("tie order = [%s %s], want [first second]", posts[0].Slug, posts[1].Slug)
	}
}

func TestListPostsDuplicateSlug(t *testing.T) {
	s, dir := setupTestStore(t)

	writePost(t, dir, "same.md", postFile("One", "2024-01-01", "a"))
	writePost(t, dir, "same.mdx", postFile("Two", "2024-01-02", "b"))

	_, err := s.ListPosts()
	if err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

func TestListPostsFailsOnMalformedFile(t *testing.T) {
	s, dir := setupTestStore(t)

	writePost(t, dir, "good.md", postFile("Good", "2024-01-01", "a"))
	writePost(t, dir, "bad.md", "---\ntitle: Unclosed\npublishedAt: 2024-01-01\n\nno closing marker")

	_, err := s.ListPosts()
	if !errors.Is(err, frontmatter.ErrNoFrontMatter) {
		t.Errorf("expected front matter error for unclosed block, got %v", err)
	}
}

func TestListPostsIgnoresOtherFiles(t *testing.T) {
	s, dir := setupTestStore(t)

	writePost(t, dir, "post.md", postFile("Post", "2024-01-01", "a"))
	writePost(t, dir, "notes.txt", "not a post")
	writePost(t, dir, ".draft.md", "hidden")
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("ListPosts count = %d, want 1", len(posts))
	}
}

func TestGetPost(t *testing.T) {
	s, dir := setupTestStore(t)

	content := "---\ntitle: A Post\npublishedAt: 2024-03-10\nsummary: About things.\nimage: /public/a.png\n---\n\nHello **world**.\n"
	writePost(t, dir, "a-post.md", content)

	post, err := s.GetPost("a-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if post.Slug != "a-post" {
		t.Errorf("Slug = %q, want %q", post.Slug, "a-post")
	}
	if post.Title != "A Post" {
		t.Errorf("Title = %q, want %q", post.Title, "A Post")
	}
	if want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC); !post.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", post.PublishedAt, want)
	}
	if post.Summary != "About things." {
		t.Errorf("Summary = %q", post.Summary)
	}
	if post.Image != "/public/a.png" {
		t.Errorf("Image = %q", post.Image)
	}
	if post.Link != "/blog/a-post/" {
		t.Errorf("Link = %q, want %q", post.Link, "/blog/a-post/")
	}
	if post.Body != "Hello **world**." {
		t.Errorf("Body = %q", post.Body)
	}
}

func TestGetPostMdxExtension(t *testing.T) {
	s, dir := setupTestStore(t)

	writePost(t, dir, "mixed.mdx", postFile("Mixed", "2024-01-01", "x"))

	post, err := s.GetPost("mixed")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if post.Slug != "mixed" {
		t.Errorf("Slug = %q, want %q", post.Slug, "mixed")
	}
}

func TestGetPostNotFound(t *testing.T) {
	s, _ := setupTestStore(t)

	_, err := s.GetPost("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPostRejectsPathLikeSlugs(t *testing.T) {
	s, dir := setupTestStore(t)
	writePost(t, dir, "real.md", postFile("Real", "2024-01-01", "a"))

	for _, slug := range []string{"", "../real", "sub/real", ".real", "..", "real/"} {
		if _, err := s.GetPost(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetPost(%q) = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestSlugsAreDistinct(t *testing.T) {
	s, dir := setupTestStore(t)

	writePost(t, dir, "one.md", postFile("One", "2024-01-01", "a"))
	writePost(t, dir, "two.md", postFile("Two", "2024-01-02", "b"))
	writePost(t, dir, "three.md", postFile("Three", "2024-01-03", "c"))

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	seen := make(map[string]bool)
	for _, p := range posts {
		if seen[p.Slug] {
			t.Errorf("duplicate slug %q in store", p.Slug)
		}
		seen[p.Slug] = true
	}
}
