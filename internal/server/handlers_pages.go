package server

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/jsonld"
	"github.com/jonathan/studentjobs/internal/leads"
	"github.com/jonathan/studentjobs/internal/rendering"
	"github.com/jonathan/studentjobs/internal/summary"
	"github.com/jonathan/studentjobs/internal/types"
	"go.uber.org/zap"
)

// homePosts is the number of posts previewed on the homepage.
const homePosts = 4

var homeFAQ = []rendering.FAQEntry{
	{
		Question: "Can non-EU students work in Rotterdam?",
		Answer:   "Yes, but typically up to 16 hours/week during the academic year (or full-time in summer) with the correct permit. Always confirm the latest rules with your employer.",
	},
	{
		Question: "Do I need Dutch for these jobs?",
		Answer:   "Many roles are English-friendly (hospitality, logistics, delivery). Speaking basic Dutch broadens your options.",
	},
	{
		Question: "How are listings vetted?",
		Answer:   "We review employer details, contract type, and pay transparency before publishing.",
	},
}

var employerFAQ = []rendering.FAQEntry{
	{Question: "How fast will my job go live?", Answer: "Most roles are reviewed same day. Featured listings are prioritized."},
	{Question: "Can I link to my own site?", Answer: "Yes. Add an external apply URL and candidates will go directly to your website or ATS."},
	{Question: "Do you screen candidates?", Answer: "We publish the role and route applications to you. On request we can pre-filter basic criteria."},
	{Question: "How long does a listing run?", Answer: "Standard listings run 30 days. You can request an extension anytime."},
}

// render writes a page. Structured-data documents are marshaled into the head.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, page rendering.Page, docs ...any) {
	page.Site = s.site
	for _, doc := range docs {
		js, err := jsonld.Marshal(doc)
		if err != nil {
			s.logger.Error("Failed to marshal structured data", zap.String("path", r.URL.Path), zap.Error(err))
			continue
		}
		page.JSONLD = append(page.JSONLD, js)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Render buffers, so a failure leaves the response untouched.
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, name, page); err != nil {
		s.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) notFoundPage(w http.ResponseWriter, r *http.Request, message string) {
	s.render(w, r, http.StatusNotFound, rendering.PageNotFound, rendering.Page{
		Title:   "Page not found | " + s.site.Name,
		Path:    r.URL.Path,
		NoIndex: true,
		Data:    rendering.NotFoundData{Message: message},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFoundPage(w, r, "We couldn't find that page.")
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	jobs := s.catalog.Jobs()
	posts := s.posts.Posts()
	if len(posts) > homePosts {
		posts = posts[:homePosts]
	}

	s.render(w, r, http.StatusOK, rendering.PageHome, rendering.Page{
		Title:       "Student Jobs in Rotterdam | Part-Time & English-Friendly Work",
		Description: "Find student jobs in Rotterdam: hospitality, delivery, retail, tutoring and more. English-friendly roles, flexible hours, updated daily.",
		Path:        "/",
		Data: rendering.HomeData{
			Featured:   rendering.NewJobCards(s.catalog.FeaturedJobs()),
			Categories: rendering.CategoryLinks(jobs),
			Posts:      posts,
			FAQ:        homeFAQ,
		},
	}, jsonld.WebSite(s.site), jsonld.SiteOrganization(s.site))
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	// Invalid filters are dropped on pages; the JSON API rejects them.
	q, _ := parseQuery(r.URL.Query())
	jobs := catalog.Filter(s.catalog, q)

	name := "Jobs in Rotterdam"
	s.render(w, r, http.StatusOK, rendering.PageJobs, rendering.Page{
		Title:       name + " | " + s.site.Name,
		Description: "All current student jobs in Rotterdam.",
		Path:        "/jobs",
		NoIndex:     !q.IsZero(),
		Data: rendering.JobsData{
			Heading:    "All Jobs in Rotterdam",
			Jobs:       rendering.NewJobCards(jobs),
			Filters:    echoFilters(q),
			Categories: rendering.CategoryLinks(s.catalog.Jobs()),
		},
	}, jsonld.JobList(name, jobs, s.site))
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	job, ok := s.catalog.JobBySlug(slug)
	if !ok {
		s.notFoundPage(w, r, "This job is no longer available.")
		return
	}

	canonical := s.site.JobURL(job.Slug)
	posting, err := jsonld.JobPosting(job, canonical)
	if err != nil {
		s.logger.Error("Failed to build JobPosting", zap.String("slug", slug), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	categories := make([]rendering.CategoryLink, 0, len(job.Categories))
	for _, link := range rendering.CategoryLinks([]types.JobRecord{job}) {
		if link.Count > 0 {
			categories = append(categories, link)
		}
	}

	s.render(w, r, http.StatusOK, rendering.PageJob, rendering.Page{
		Title:       job.Title + " at " + job.OrgName + " | " + s.site.Name,
		Description: job.ShortDescription,
		Path:        "/jobs/" + job.Slug,
		Data: rendering.JobData{
			Job:         rendering.NewJobCard(job),
			Description: template.HTML(job.DescriptionHTML), //nolint:gosec // authored in the embedded dataset
			Incentives:  summary.Incentives(job.RawJob),
			Categories:  categories,
		},
	}, posting, jsonld.Breadcrumbs(
		jsonld.Crumb{Name: "Home", URL: s.site.URL("")},
		jsonld.Crumb{Name: "Jobs", URL: s.site.URL("/jobs")},
		jsonld.Crumb{Name: job.Title, URL: canonical},
	))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, rendering.PageCategories, rendering.Page{
		Title:       "Student job categories in Rotterdam | " + s.site.Name,
		Description: "Browse student jobs in Rotterdam by category: delivery, sales, hospitality, retail, tutoring, events and fieldwork.",
		Path:        "/categories",
		Data:        rendering.CategoriesData{Categories: rendering.CategoryLinks(s.catalog.Jobs())},
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	category := types.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		s.notFoundPage(w, r, "There is no such job category.")
		return
	}

	jobs := catalog.Filter(s.catalog, catalog.Query{Category: category})
	name := category.Label() + " student jobs in Rotterdam"
	path := "/categories/" + string(category)

	s.render(w, r, http.StatusOK, rendering.PageJobs, rendering.Page{
		Title:       name + " | " + s.site.Name,
		Description: name + ": part-time and English-friendly roles.",
		Path:        path,
		Data: rendering.JobsData{
			Heading:    name,
			Intro:      "Recent openings in " + strings.ToLower(category.Label()) + ". Filter by language and hours on the jobs page.",
			Jobs:       rendering.NewJobCards(jobs),
			Filters:    rendering.Filters{Category: string(category)},
			Categories: rendering.CategoryLinks(s.catalog.Jobs()),
		},
	}, jsonld.JobList(name, jobs, s.site), jsonld.Breadcrumbs(
		jsonld.Crumb{Name: "Home", URL: s.site.URL("")},
		jsonld.Crumb{Name: "Categories", URL: s.site.URL("/categories")},
		jsonld.Crumb{Name: category.Label(), URL: s.site.URL(path)},
	))
}

func (s *Server) handleEmployers(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, rendering.PageEmployers, rendering.Page{
		Title:       "Are you a business? Feature your job | " + s.site.Name,
		Description: "Hire students in Rotterdam. Feature your job on the homepage, category pages, and our weekly newsletter.",
		Path:        "/employers",
		Data: rendering.EmployersData{
			EmploymentTypes: types.EmploymentTypes(),
			Categories:      types.Categories(),
			City:            leads.DefaultCity,
			HoneypotField:   leads.HoneypotField,
			FAQ:             employerFAQ,
		},
	}, jsonld.SiteOrganization(s.site))
}

func (s *Server) handleEmployerThankYou(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, rendering.PageThankYou, rendering.Page{
		Title:   "Thanks for your submission | " + s.site.Name,
		Path:    "/employers/thank-you",
		NoIndex: true,
		Data: rendering.ThankYouData{
			Heading: "Thanks! We received your job",
			Message: "We review every role before it goes live, usually the same day. We'll email you if we need anything else.",
			Back:    "/employers",
		},
	})
}

func (s *Server) handleThankYou(w http.ResponseWriter, r *http.Request) {
	data := rendering.ThankYouData{
		Heading: "Thank you!",
		Message: "We received your message.",
		Back:    "/",
	}
	if r.URL.Query().Get("type") == "newsletter" {
		data.Heading = "You're subscribed"
		data.Message = "Expect one email per week with new student jobs in Rotterdam."
	}

	s.render(w, r, http.StatusOK, rendering.PageThankYou, rendering.Page{
		Title:   "Thank you | " + s.site.Name,
		Path:    "/thank-you",
		NoIndex: true,
		Data:    data,
	})
}

const blogDescription = "Rotterdam student job guides: English-friendly part-time jobs, permits, contracts, pay, and fast apply tips."

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	posts := s.posts.Posts()
	cards := make([]rendering.PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, rendering.PostCard{Post: p, ReadingMinutes: s.readingMinutes(p)})
	}

	name := "Student Jobs Rotterdam Blog"
	s.render(w, r, http.StatusOK, rendering.PageBlog, rendering.Page{
		Title:       name,
		Description: blogDescription,
		Path:        "/blog",
		Data:        rendering.BlogData{Posts: cards},
	}, jsonld.BlogCollection(name, blogDescription, posts, s.site))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, ok := s.posts.Post(slug)
	if !ok {
		s.notFoundPage(w, r, "We couldn't find that article.")
		return
	}

	words, err := blog.WordCount(post.Body)
	if err != nil {
		s.logger.Warn("Failed to count words", zap.String("slug", slug), zap.Error(err))
	}

	canonical := s.site.URL(post.Path())
	docs := []any{
		jsonld.Article(post, words, s.site),
		jsonld.Breadcrumbs(
			jsonld.Crumb{Name: "Home", URL: s.site.URL("")},
			jsonld.Crumb{Name: "Blog", URL: s.site.URL("/blog")},
			jsonld.Crumb{Name: post.Title, URL: canonical},
		),
	}
	if len(post.FAQ) > 0 {
		docs = append(docs, jsonld.FAQ(canonical, post.FAQ))
	}

	s.render(w, r, http.StatusOK, rendering.PagePost, rendering.Page{
		Title:       post.Title,
		Description: post.Description,
		Path:        post.Path(),
		Lang:        post.Language,
		Data: rendering.PostData{
			Post:           post,
			Body:           template.HTML(post.Body), //nolint:gosec // embedded editorial content
			ReadingMinutes: blog.ReadingMinutes(words),
			Related:        s.related(post, 3),
		},
	}, docs...)
}

func (s *Server) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, rendering.PageStatic, rendering.Page{
		Title:       "Privacy Policy | " + s.site.Name,
		Description: "Privacy policy for " + s.site.Name + ".",
		Path:        "/privacy",
		Data: rendering.StaticData{
			Heading: "Privacy Policy",
			Paragraphs: []string{
				"This site respects your privacy. We only store data required for job listings and analytics.",
				"Form submissions are forwarded to our team by email and are not shared with third parties.",
			},
		},
	})
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, rendering.PageStatic, rendering.Page{
		Title:       "Terms & Conditions | " + s.site.Name,
		Description: "Terms and conditions for using " + s.site.Name + ".",
		Path:        "/terms",
		Data: rendering.StaticData{
			Heading:    "Terms & Conditions",
			Paragraphs: []string{"By using this site, you agree to our terms of service and job posting policies."},
		},
	})
}

func (s *Server) readingMinutes(p blog.Post) int {
	words, err := blog.WordCount(p.Body)
	if err != nil {
		return 1
	}
	return blog.ReadingMinutes(words)
}

// related returns up to n other posts written in the same language.
func (s *Server) related(post blog.Post, n int) []blog.Post {
	var out []blog.Post
	for _, p := range s.posts.Posts() {
		if len(out) == n {
			break
		}
		if p.Slug != post.Slug && p.Language == post.Language {
			out = append(out, p)
		}
	}
	return out
}

// echoFilters turns a parsed query back into form values.
func echoFilters(q catalog.Query) rendering.Filters {
	f := rendering.Filters{Text: q.Text, Category: string(q.Category)}
	if q.English != nil {
		if *q.English {
			f.English = "true"
		} else {
			f.English = "false"
		}
	}
	return f
}

// parseQuery reads the jobs index filters. Invalid values are left out of the
// returned query and reported in the error.
func parseQuery(values url.Values) (catalog.Query, error) {
	q := catalog.Query{
		Text:         strings.TrimSpace(values.Get("q")),
		FeaturedOnly: values.Get("featured") == "true",
	}
	var err error

	if c := values.Get("category"); c != "" {
		if types.Category(c).Valid() {
			q.Category = types.Category(c)
		} else {
			err = &ErrValidation{Field: "category", Message: "unknown category " + c}
		}
	}

	switch values.Get("english") {
	case "":
	case "true":
		english := true
		q.English = &english
	case "false":
		english := false
		q.English = &english
	default:
		err = &ErrValidation{Field: "english", Message: "must be true or false"}
	}

	return q, err
}
