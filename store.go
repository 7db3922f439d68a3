package inkpost

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/halvard/inkpost/frontmatter"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("inkpost: post not found")

// postExts are the file extensions treated as post files.
var postExts = []string{".md", ".mdx"}

// Store reads posts from a directory of front-matter-plus-markdown files.
// It holds no state beyond the filesystem handle: every read hits the
// directory fresh, so edits show up on the next request.
type Store struct {
	fsys fs.FS
}

// NewStore opens the posts directory at dir.
func NewStore(dir string) (*Store, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("inkpost: posts directory: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("inkpost: posts path %s is not a directory", dir)
	}
	return &Store{fsys: os.DirFS(dir)}, nil
}

// NewStoreFS creates a Store over an arbitrary filesystem.
func NewStoreFS(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// ListPosts returns every post ordered by publication date descending.
// The sort is stable, so posts sharing a date keep directory order.
// Duplicate slugs and malformed front matter fail the whole read: the
// content is authored, so a broken file is a bug to surface, not skip.
func (s *Store) ListPosts() ([]Post, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("inkpost: read posts directory: %w", err)
	}

	var posts []Post
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isPostFile(name) {
			continue
		}
		post, err := s.readPost(name)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[post.Slug]; ok {
			return nil, fmt.Errorf("inkpost: duplicate slug %q: %s and %s", post.Slug, prev, name)
		}
		seen[post.Slug] = name
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

// GetPost returns a single post by slug. Unknown slugs, including anything
// that does not look like a bare file name, yield ErrNotFound rather than a
// filesystem error.
func (s *Store) GetPost(slug string) (Post, error) {
	if slug == "" || slug != path.Base(slug) || strings.HasPrefix(slug, ".") {
		return Post{}, ErrNotFound
	}
	for _, ext := range postExts {
		name := slug + ext
		if _, err := fs.Stat(s.fsys, name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Post{}, fmt.Errorf("inkpost: stat %s: %w", name, err)
		}
		return s.readPost(name)
	}
	return Post{}, ErrNotFound
}

func (s *Store) readPost(name string) (Post, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return Post{}, fmt.Errorf("inkpost: read %s: %w", name, err)
	}
	matter, body, err := frontmatter.Parse(data)
	if err != nil {
		return Post{}, fmt.Errorf("inkpost: parse %s: %w", name, err)
	}
	slug := strings.TrimSuffix(name, path.Ext(name))
	return Post{
		Slug:        slug,
		Title:       matter.Title,
		PublishedAt: matter.PublishedAt,
		Summary:     matter.Summary,
		Image:       matter.Image,
		Link:        "/blog/" + slug + "/",
		Body:        strings.TrimSpace(string(body)),
	}, nil
}

func isPostFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := path.Ext(name)
	for _, e := range postExts {
		if ext == e {
			return true
		}
	}
	return false
}
