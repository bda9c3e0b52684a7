// Package seo builds the crawler-facing artifacts of the site: the sitemap,
// robots.txt and the blog RSS feed.
package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/types"
)

// StaticPaths are the fixed pages listed first in the sitemap.
var StaticPaths = []string{"/", "/jobs", "/categories", "/blog", "/employers", "/privacy", "/terms"}

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	atomNS    = "http://www.w3.org/2005/Atom"

	// FeedTitle and FeedDescription describe the blog channel.
	FeedTitle       = "Student Jobs Rotterdam Blog"
	FeedDescription = "Rotterdam student job guides: English-friendly part-time jobs, permits, contracts, pay, and fast apply tips."
)

// URL is one sitemap entry.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// SitemapURLs lists static pages, blog posts, category pages and job detail
// pages, in that order. Job entries carry datePosted as lastmod and blog
// entries their modification date.
func SitemapURLs(site types.Site, posts []blog.Post, jobs []types.JobRecord) []URL {
	urls := make([]URL, 0, len(StaticPaths)+len(posts)+len(types.Categories())+len(jobs))
	for _, p := range StaticPaths {
		urls = append(urls, URL{Loc: site.URL(p)})
	}
	for _, p := range posts {
		urls = append(urls, URL{Loc: site.URL(p.Path()), LastMod: p.ModifiedAt().Format(time.DateOnly)})
	}
	for _, c := range types.Categories() {
		urls = append(urls, URL{Loc: site.URL("/categories/" + string(c))})
	}
	for _, j := range jobs {
		urls = append(urls, URL{Loc: site.JobURL(j.Slug), LastMod: j.DatePosted})
	}
	return urls
}

// Sitemap renders the sitemap XML document.
func Sitemap(site types.Site, posts []blog.Post, jobs []types.JobRecord) ([]byte, error) {
	return marshal(urlSet{XMLNS: sitemapNS, URLs: SitemapURLs(site, posts, jobs)})
}

// Robots renders robots.txt: everything allowed, with the sitemap and host lines.
func Robots(site types.Site) []byte {
	var buf bytes.Buffer
	buf.WriteString("User-Agent: *\n")
	buf.WriteString("Allow: /\n\n")
	fmt.Fprintf(&buf, "Host: %s\n", strings.TrimRight(site.BaseURL, "/"))
	fmt.Fprintf(&buf, "Sitemap: %s\n", site.URL("/sitemap.xml"))
	return buf.Bytes()
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	AtomNS  string   `xml:"xmlns:atom,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string   `xml:"title"`
	Link          string   `xml:"link"`
	AtomLink      atomLink `xml:"atom:link"`
	Description   string   `xml:"description"`
	Language      string   `xml:"language"`
	LastBuildDate string   `xml:"lastBuildDate"`
	Items         []item   `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Feed renders the RSS 2.0 feed of the given posts. The build date is now.
func Feed(site types.Site, posts []blog.Post, now time.Time) ([]byte, error) {
	items := make([]item, 0, len(posts))
	for _, p := range posts {
		u := site.URL(p.Path())
		items = append(items, item{
			Title:       p.Title,
			Link:        u,
			GUID:        guid{IsPermaLink: true, Value: u},
			Description: p.Summary,
			PubDate:     p.PublishedAt().UTC().Format(time.RFC1123),
		})
	}

	return marshal(rss{
		Version: "2.0",
		AtomNS:  atomNS,
		Channel: channel{
			Title:         FeedTitle,
			Link:          site.URL("/blog"),
			AtomLink:      atomLink{Href: site.URL("/blog/rss.xml"), Rel: "self", Type: "application/rss+xml"},
			Description:   FeedDescription,
			Language:      site.Language(),
			LastBuildDate: now.UTC().Format(time.RFC1123),
			Items:         items,
		},
	})
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode XML: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
