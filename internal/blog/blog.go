// Package blog holds the editorial posts served under /blog, their FAQ
// entries and the helpers that inspect post bodies.
package blog

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of Published and Modified.
const DateLayout = "2006-01-02"

//go:embed posts.yaml content/*.html
var embedded embed.FS

// FAQ is one question and answer shown at the end of a post.
type FAQ struct {
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

// Post is a single blog article.
type Post struct {
	Slug        string `yaml:"slug" validate:"required"`
	Title       string `yaml:"title" validate:"required"`
	Headline    string `yaml:"headline" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	// Summary is the teaser used on the index page and in the feed.
	Summary   string `yaml:"summary" validate:"required"`
	Language  string `yaml:"language" validate:"required,oneof=en-NL nl-NL"`
	Published string `yaml:"published" validate:"required,datetime=2006-01-02"`
	Modified  string `yaml:"modified" validate:"omitempty,datetime=2006-01-02"`
	Image     string `yaml:"image" validate:"required,startswith=/"`
	ImageAlt  string `yaml:"imageAlt"`
	FAQ       []FAQ  `yaml:"faq" validate:"dive"`

	Body string `yaml:"-"`
}

// Path returns the site-relative URL of the post.
func (p Post) Path() string {
	return "/blog/" + p.Slug
}

// PublishedAt parses Published. The zero time is returned for malformed dates.
func (p Post) PublishedAt() time.Time {
	t, _ := time.Parse(DateLayout, p.Published)
	return t
}

// ModifiedAt parses Modified, falling back to PublishedAt when it is empty.
func (p Post) ModifiedAt() time.Time {
	if t, err := time.Parse(DateLayout, p.Modified); err == nil {
		return t
	}
	return p.PublishedAt()
}

// LastModified returns Modified, or Published for posts never revised.
func (p Post) LastModified() string {
	if p.Modified == "" {
		return p.Published
	}
	return p.Modified
}

// IsEnglish reports whether the post is written in English.
func (p Post) IsEnglish() bool {
	return strings.HasPrefix(p.Language, "en")
}

// Registry is the read-only set of posts.
type Registry struct {
	posts []Post
}

var loadEmbedded = sync.OnceValues(func() (*Registry, error) {
	index, err := embedded.ReadFile("posts.yaml")
	if err != nil {
		return nil, &RegistryError{Message: "failed to read embedded index", Cause: err}
	}
	bodies, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, &RegistryError{Message: "failed to open embedded content", Cause: err}
	}
	return Parse(index, bodies)
})

// Load returns the registry compiled into the binary.
func Load() (*Registry, error) {
	return loadEmbedded()
}

// Parse decodes a post index and attaches each body from bodies/<slug>.html.
func Parse(index []byte, bodies fs.FS) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(index))
	dec.KnownFields(true)

	var doc struct {
		Posts []Post `yaml:"posts"`
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, &RegistryError{Message: "failed to decode index", Cause: err}
	}

	validate := validator.New()
	seen := make(map[string]bool, len(doc.Posts))
	for i := range doc.Posts {
		p := &doc.Posts[i]
		if err := validate.Struct(p); err != nil {
			return nil, &RegistryError{Slug: p.Slug, Message: "invalid metadata", Cause: err}
		}
		if seen[p.Slug] {
			return nil, &RegistryError{Slug: p.Slug, Message: "duplicate slug"}
		}
		seen[p.Slug] = true

		body, err := fs.ReadFile(bodies, p.Slug+".html")
		if err != nil {
			return nil, &RegistryError{Slug: p.Slug, Message: "missing body", Cause: err}
		}
		p.Body = strings.TrimSpace(string(body))
		if p.Body == "" {
			return nil, &RegistryError{Slug: p.Slug, Message: "empty body", Cause: errors.New("no content")}
		}
	}

	return &Registry{posts: doc.Posts}, nil
}

// Posts returns every post in index order.
func (r *Registry) Posts() []Post {
	return slices.Clone(r.posts)
}

// Post returns the post with the given slug.
func (r *Registry) Post(slug string) (Post, bool) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// Feed returns the English posts, most recently published first.
func (r *Registry) Feed() []Post {
	feed := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		if p.IsEnglish() {
			feed = append(feed, p)
		}
	}
	slices.SortStableFunc(feed, func(a, b Post) int {
		return b.PublishedAt().Compare(a.PublishedAt())
	})
	return feed
}
