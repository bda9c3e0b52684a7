package rendering

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = types.Site{Name: "Student Jobs Rotterdam", BaseURL: "https://studentjobsrotterdam.nl", Locale: "en_NL"}

func testJob() types.JobRecord {
	return types.JobRecord{
		RawJob: types.RawJob{
			Slug:            "agent",
			Title:           "Viewing Agent <Rotterdam>",
			OrgName:         "domakin",
			DescriptionHTML: "<p>Visit rooms.</p>",
			EmploymentType:  types.EmploymentContractor,
			AddressLocality: types.ServedCity,
			Area:            "Kralingen",
			DatePosted:      "2026-10-01",
			Categories:      []types.Category{types.CategoryFieldwork},
			DUO:             true,
			Featured:        true,
			PerGigAmount:    ptr(20),
		},
		ShortDescription: "€20 per gig — Visit rooms.",
	}
}

func render(t *testing.T, name string, page Page) *goquery.Document {
	t.Helper()
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRender_Layout(t *testing.T) {
	doc := render(t, PageStatic, Page{
		Site:        testSite,
		Title:       "Privacy Policy | Student Jobs Rotterdam",
		Description: "Privacy policy",
		Path:        "/privacy",
		JSONLD:      []template.JS{`{"@type":"WebSite"}`},
		NoIndex:     true,
		Data:        StaticData{Heading: "Privacy Policy", Paragraphs: []string{"We respect your privacy."}},
	})

	assert.Equal(t, "en-NL", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "Privacy Policy | Student Jobs Rotterdam", doc.Find("title").Text())
	assert.Equal(t, "https://studentjobsrotterdam.nl/privacy", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	assert.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
	assert.Equal(t, `{"@type":"WebSite"}`, doc.Find(`script[type="application/ld+json"]`).Text())
	assert.Equal(t, "Privacy Policy", doc.Find("h1").Text())
	assert.Equal(t, "We respect your privacy.", doc.Find(".static p").Text())
	assert.Contains(t, doc.Find("footer").Text(), "Student Jobs Rotterdam")
}

func TestRender_Home(t *testing.T) {
	job := testJob()
	posts := []blog.Post{{Slug: "guide", Title: "Guide", Summary: "Read me", Language: "en-NL"}}

	doc := render(t, PageHome, Page{
		Site: testSite,
		Path: "/",
		Data: HomeData{
			Featured:   NewJobCards([]types.JobRecord{job}),
			Categories: CategoryLinks([]types.JobRecord{job}),
			Posts:      posts,
			FAQ:        []FAQEntry{{Question: "Do I need Dutch?", Answer: "Not always."}},
		},
	})

	card := doc.Find(".featured .job-card")
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "/jobs/agent", card.Find("a").AttrOr("href", ""))
	assert.Equal(t, "Viewing Agent <Rotterdam>", card.Find(".job-title").Text())
	assert.Equal(t, "€20 per gig — Visit rooms.", card.Find(".short").Text())
	assert.Equal(t, 1, card.Find(".badge.duo").Length())
	assert.Equal(t, "Pay: N/A • Hours: N/A • Kralingen • Dutch required", card.Find(".meta").Text())

	assert.Equal(t, len(types.Categories()), doc.Find(".categories .category").Length())
	assert.Equal(t, len(types.Categories())+1, doc.Find(`select[name="category"] option`).Length())
	assert.Equal(t, "/blog/guide", doc.Find(".blog-preview a").AttrOr("href", ""))
	assert.Equal(t, "/api/lead", doc.Find(".newsletter form").AttrOr("action", ""))
	assert.Equal(t, 1, doc.Find(`.newsletter input[name="website"]`).Length())
	assert.Equal(t, "Do I need Dutch?", doc.Find(".faq summary").Text())
}

func TestRender_JobsEchoesFilters(t *testing.T) {
	doc := render(t, PageJobs, Page{
		Site: testSite,
		Path: "/jobs",
		Data: JobsData{
			Heading:    "All Jobs in Rotterdam",
			Filters:    Filters{Text: "agent", Category: "fieldwork", English: "false"},
			Categories: CategoryLinks(nil),
		},
	})

	assert.Equal(t, "agent", doc.Find("#q").AttrOr("value", ""))
	assert.Equal(t, "fieldwork", doc.Find("#category option[selected]").AttrOr("value", ""))
	assert.Equal(t, "false", doc.Find("#english option[selected]").AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find(".empty").Length())
}

func TestRender_Job(t *testing.T) {
	job := testJob()
	job.ExternalURL = "https://example.com/apply"
	job.BrandColor = "#1D4ED8"

	doc := render(t, PageJob, Page{
		Site: testSite,
		Path: "/jobs/agent",
		Data: JobData{
			Job:         NewJobCard(job),
			Description: template.HTML(job.DescriptionHTML),
			Incentives:  []string{"€20 per gig"},
			Categories:  CategoryLinks([]types.JobRecord{job})[6:],
		},
	})

	assert.Equal(t, "Viewing Agent <Rotterdam>", doc.Find("h1").Text())
	assert.Equal(t, "Visit rooms.", doc.Find(".description p").Text())
	assert.Equal(t, "€20 per gig", doc.Find(".incentives li").Text())
	assert.Equal(t, "#1D4ED8", doc.Find("article.job").AttrOr("data-brand-color", ""))
	assert.Equal(t, "https://example.com/apply", doc.Find("a.apply").AttrOr("href", ""))
	assert.Equal(t, "/categories/fieldwork", doc.Find(".categories a").AttrOr("href", ""))
	assert.Contains(t, doc.Find(".facts").Text(), "Contractor")
}

func TestRender_Employers(t *testing.T) {
	doc := render(t, PageEmployers, Page{
		Site: testSite,
		Path: "/employers",
		Data: EmployersData{
			EmploymentTypes: types.EmploymentTypes(),
			Categories:      types.Categories(),
			City:            "Rotterdam",
			HoneypotField:   "website",
		},
	})

	form := doc.Find("#submit form")
	assert.Equal(t, "/api/lead/employer-lead", form.AttrOr("action", ""))
	assert.Equal(t, len(types.EmploymentTypes()), form.Find(`select[name="employmentType"] option`).Length())
	assert.Equal(t, "Part-time", form.Find(`select[name="employmentType"] option`).First().Text())
	assert.Equal(t, "Rotterdam", form.Find(`input[name="city"]`).AttrOr("value", ""))
	assert.Equal(t, 1, form.Find(`input[name="website"]`).Length())
}

func TestRender_Post(t *testing.T) {
	post := blog.Post{
		Slug: "guide", Title: "Guide", Headline: "The guide", Language: "nl-NL",
		Published: "2026-01-02", Modified: "2026-02-01",
		FAQ: []blog.FAQ{{Question: "Q?", Answer: "A."}},
	}
	doc := render(t, PagePost, Page{
		Site: testSite,
		Path: post.Path(),
		Lang: post.Language,
		Data: PostData{Post: post, Body: template.HTML("<h2>Intro</h2>"), ReadingMinutes: 4},
	})

	assert.Equal(t, "nl-NL", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "The guide", doc.Find("h1").Text())
	assert.Equal(t, "Intro", doc.Find(".body h2").Text())
	assert.Contains(t, doc.Find(".post .meta").Text(), "4 min read")
	assert.Contains(t, doc.Find(".post .meta").Text(), "updated")
	assert.Equal(t, 1, doc.Find(".faq details").Length())
}

func TestRender_OtherPages(t *testing.T) {
	pages := map[string]any{
		PageCategories: CategoriesData{Categories: CategoryLinks(nil)},
		PageThankYou:   ThankYouData{Heading: "Thanks!", Message: "We'll be in touch.", Back: "/"},
		PageBlog:       BlogData{Posts: []PostCard{{Post: blog.Post{Slug: "a", Title: "A"}, ReadingMinutes: 2}}},
		PageNotFound:   NotFoundData{Message: "No such job."},
	}
	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			doc := render(t, name, Page{Site: testSite, Path: "/x", Data: data})
			assert.NotEmpty(t, strings.TrimSpace(doc.Find("h1").Text()))
		})
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "missing", Page{Site: testSite})
	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "missing", tmplErr.Page)
	assert.Zero(t, buf.Len())
}

func TestRender_ExecutionFailureWritesNothing(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	// The job page needs JobData.
	err = r.Render(&buf, PageJob, Page{Site: testSite, Data: StaticData{}})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestStatic(t *testing.T) {
	data, err := fs.ReadFile(Static(), "site.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), "--brand")
}
