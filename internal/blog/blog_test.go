package blog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndex = `
posts:
  - slug: older
    title: Older
    headline: Older headline
    description: Older description
    summary: Older summary
    language: en-NL
    published: "2026-01-02"
    modified: "2026-01-05"
    image: /blog/a.jpg
  - slug: dutch
    title: Nederlands
    headline: Kop
    description: Omschrijving
    summary: Samenvatting
    language: nl-NL
    published: "2026-06-01"
    modified: "2026-06-01"
    image: /blog/b.jpg
  - slug: newer
    title: Newer
    headline: Newer headline
    description: Newer description
    summary: Newer summary
    language: en-NL
    published: "2026-03-01"
    image: /blog/c.jpg
    faq:
      - question: Why?
        answer: Because.
`

func testBodies() fstest.MapFS {
	return fstest.MapFS{
		"older.html": {Data: []byte("<p>Old post.</p>\n")},
		"dutch.html": {Data: []byte("<p>Hallo.</p>")},
		"newer.html": {Data: []byte("<p>New post.</p>")},
	}
}

func TestParse(t *testing.T) {
	t.Run("valid registry", func(t *testing.T) {
		reg, err := Parse([]byte(testIndex), testBodies())
		require.NoError(t, err)

		posts := reg.Posts()
		require.Len(t, posts, 3)
		assert.Equal(t, "older", posts[0].Slug)
		assert.Equal(t, "<p>Old post.</p>", posts[0].Body)
		assert.Equal(t, "/blog/older", posts[0].Path())

		p, ok := reg.Post("newer")
		require.True(t, ok)
		require.Len(t, p.FAQ, 1)
		assert.Equal(t, "Because.", p.FAQ[0].Answer)
		assert.Empty(t, p.Modified)
		assert.Equal(t, p.PublishedAt(), p.ModifiedAt(), "unrevised post falls back to published")
		assert.Equal(t, "2026-03-01", p.LastModified())

		older, ok := reg.Post("older")
		require.True(t, ok)
		assert.Equal(t, "2026-01-05", older.ModifiedAt().Format(DateLayout))
		assert.Equal(t, "2026-01-05", older.LastModified())

		_, ok = reg.Post("missing")
		assert.False(t, ok)
	})

	t.Run("missing body", func(t *testing.T) {
		bodies := testBodies()
		delete(bodies, "dutch.html")

		_, err := Parse([]byte(testIndex), bodies)
		require.Error(t, err)

		var rerr *RegistryError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "dutch", rerr.Slug)
		assert.Contains(t, err.Error(), "missing body")
	})

	t.Run("invalid language", func(t *testing.T) {
		index := `
posts:
  - slug: x
    title: X
    headline: X
    description: X
    summary: X
    language: fr-FR
    published: "2026-01-02"
    modified: "2026-01-02"
    image: /x.jpg
`
		_, err := Parse([]byte(index), fstest.MapFS{"x.html": {Data: []byte("<p>x</p>")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid metadata")
	})

	t.Run("malformed modified date", func(t *testing.T) {
		index := `
posts:
  - slug: x
    title: X
    headline: X
    description: X
    summary: X
    language: en-NL
    published: "2026-01-02"
    modified: "bad"
    image: /x.jpg
`
		_, err := Parse([]byte(index), fstest.MapFS{"x.html": {Data: []byte("<p>x</p>")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid metadata")
	})

	t.Run("duplicate slug", func(t *testing.T) {
		index := testIndex + `
  - slug: older
    title: Again
    headline: Again
    description: Again
    summary: Again
    language: en-NL
    published: "2026-01-02"
    modified: "2026-01-02"
    image: /x.jpg
`
		_, err := Parse([]byte(index), testBodies())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate slug")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("posts:\n  - slug: x\n    author: me\n"), testBodies())
		require.Error(t, err)
	})
}

func TestRegistry_Feed(t *testing.T) {
	reg, err := Parse([]byte(testIndex), testBodies())
	require.NoError(t, err)

	var slugs []string
	for _, p := range reg.Feed() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"newer", "older"}, slugs)
}

func TestLoad_Embedded(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	posts := reg.Posts()
	assert.Len(t, posts, 6)

	dutch, ok := reg.Post("studenten-bijbaan-rotterdam")
	require.True(t, ok)
	assert.Equal(t, "nl-NL", dutch.Language)
	assert.False(t, dutch.IsEnglish())

	for _, p := range posts {
		assert.NotEmpty(t, p.Body, p.Slug)
		assert.NotEmpty(t, p.FAQ, p.Slug)
	}
	assert.Len(t, reg.Feed(), 5)
}
