package jsonld

import (
	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/types"
)

// WebSiteDoc is the homepage WebSite document with its sitelinks search box.
type WebSiteDoc struct {
	Context         string        `json:"@context,omitempty"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	PotentialAction *SearchAction `json:"potentialAction,omitempty"`
}

// SearchAction points search engines at the jobs index query parameter.
type SearchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

// WebSite returns the homepage WebSite document.
func WebSite(site types.Site) WebSiteDoc {
	return WebSiteDoc{
		Context: Context,
		Type:    "WebSite",
		Name:    site.Name,
		URL:     site.URL(""),
		PotentialAction: &SearchAction{
			Type:       "SearchAction",
			Target:     site.URL("/jobs") + "?q={search_term_string}",
			QueryInput: "required name=search_term_string",
		},
	}
}

// SiteOrganization returns the homepage Organization document.
func SiteOrganization(site types.Site) Organization {
	return Organization{
		Context: Context,
		Type:    "Organization",
		Name:    site.Name,
		URL:     site.URL(""),
		AreaServed: &City{
			Type: "City",
			Name: types.ServedCity,
			Address: PostalAddress{
				Type:            "PostalAddress",
				AddressLocality: types.ServedCity,
				AddressCountry:  defaultCountry,
			},
		},
	}
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string
	URL  string
}

// ItemListDoc is a schema.org ItemList or BreadcrumbList.
type ItemListDoc struct {
	Context         string     `json:"@context,omitempty"`
	Type            string     `json:"@type"`
	Name            string     `json:"name,omitempty"`
	NumberOfItems   int        `json:"numberOfItems,omitempty"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Breadcrumbs returns a BreadcrumbList with positions starting at 1.
func Breadcrumbs(crumbs ...Crumb) ItemListDoc {
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, ListItem{Type: "ListItem", Position: i + 1, Name: c.Name, Item: c.URL})
	}
	return ItemListDoc{Context: Context, Type: "BreadcrumbList", ItemListElement: items}
}

// JobList returns the ItemList of a listing index page.
func JobList(name string, jobs []types.JobRecord, site types.Site) ItemListDoc {
	items := make([]ListItem, 0, len(jobs))
	for i, j := range jobs {
		items = append(items, ListItem{Type: "ListItem", Position: i + 1, Name: j.Title, URL: site.JobURL(j.Slug)})
	}
	return ItemListDoc{
		Context:         Context,
		Type:            "ItemList",
		Name:            name,
		NumberOfItems:   len(items),
		ItemListElement: items,
	}
}

// WebPage is the mainEntityOfPage reference of an article.
type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// ArticleDoc is a schema.org Article for a blog post.
type ArticleDoc struct {
	Context             string       `json:"@context"`
	Type                string       `json:"@type"`
	Headline            string       `json:"headline"`
	Description         string       `json:"description"`
	Image               string       `json:"image,omitempty"`
	DatePublished       string       `json:"datePublished"`
	DateModified        string       `json:"dateModified"`
	InLanguage          string       `json:"inLanguage"`
	IsAccessibleForFree bool         `json:"isAccessibleForFree"`
	WordCount           int          `json:"wordCount,omitempty"`
	Author              Organization `json:"author"`
	Publisher           Organization `json:"publisher"`
	MainEntityOfPage    WebPage      `json:"mainEntityOfPage"`
}

// Article returns the Article document of a post. wordCount is omitted when zero.
func Article(post blog.Post, wordCount int, site types.Site) ArticleDoc {
	canonical := site.URL(post.Path())
	publisher := Organization{Type: "Organization", Name: site.Name, URL: site.URL("")}
	doc := ArticleDoc{
		Context:             Context,
		Type:                "Article",
		Headline:            post.Headline,
		Description:         post.Description,
		DatePublished:       post.Published,
		DateModified:        post.LastModified(),
		InLanguage:          post.Language,
		IsAccessibleForFree: true,
		WordCount:           wordCount,
		Author:              publisher,
		Publisher:           publisher,
		MainEntityOfPage:    WebPage{Type: "WebPage", ID: canonical},
	}
	if post.Image != "" {
		doc.Image = site.URL(post.Image)
	}
	return doc
}

// FAQPageDoc is a schema.org FAQPage.
type FAQPageDoc struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	ID         string     `json:"@id,omitempty"`
	MainEntity []Question `json:"mainEntity"`
}

// Question is one FAQ entry.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Answer is the accepted answer of a Question.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// FAQ returns the FAQPage of a post, anchored at canonicalURL#faq.
func FAQ(canonicalURL string, entries []blog.FAQ) FAQPageDoc {
	questions := make([]Question, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, Question{
			Type:           "Question",
			Name:           e.Question,
			AcceptedAnswer: Answer{Type: "Answer", Text: e.Answer},
		})
	}
	doc := FAQPageDoc{Context: Context, Type: "FAQPage", MainEntity: questions}
	if canonicalURL != "" {
		doc.ID = canonicalURL + "#faq"
	}
	return doc
}

// Thing is a schema.org Thing used for the about list of a collection.
type Thing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// CollectionPageDoc is the blog index document.
type CollectionPageDoc struct {
	Context     string      `json:"@context"`
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	InLanguage  string      `json:"inLanguage"`
	IsPartOf    WebSiteDoc  `json:"isPartOf"`
	About       []Thing     `json:"about,omitempty"`
	MainEntity  ItemListDoc `json:"mainEntity"`
}

var blogTopics = []string{
	"Student jobs in Rotterdam",
	"English-speaking student jobs in Rotterdam",
	"Part-time jobs for students in Rotterdam",
	"Weekend and evening student jobs in Rotterdam",
}

// BlogCollection returns the CollectionPage of the blog index.
func BlogCollection(name, description string, posts []blog.Post, site types.Site) CollectionPageDoc {
	items := make([]ListItem, 0, len(posts))
	for i, p := range posts {
		items = append(items, ListItem{Type: "ListItem", Position: i + 1, Name: p.Title, URL: site.URL(p.Path())})
	}
	about := make([]Thing, 0, len(blogTopics))
	for _, t := range blogTopics {
		about = append(about, Thing{Type: "Thing", Name: t})
	}
	return CollectionPageDoc{
		Context:     Context,
		Type:        "CollectionPage",
		Name:        name,
		Description: description,
		URL:         site.URL("/blog"),
		InLanguage:  site.Language(),
		IsPartOf:    WebSiteDoc{Type: "WebSite", Name: site.Name, URL: site.URL("")},
		About:       about,
		MainEntity:  ItemListDoc{Type: "ItemList", ItemListElement: items},
	}
}
