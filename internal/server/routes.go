package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonathan/studentjobs/internal/rendering"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(s.withRateLimit)

	r.NotFound(s.handleNotFound)

	// Pages
	r.Get("/", s.handleHome)
	r.Get("/jobs", s.handleJobs)
	r.Get("/jobs/{slug}", s.handleJob)
	r.Get("/categories", s.handleCategories)
	r.Get("/categories/{category}", s.handleCategory)
	r.Get("/employers", s.handleEmployers)
	r.Get("/employers/thank-you", s.handleEmployerThankYou)
	r.Get("/thank-you", s.handleThankYou)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/{slug}", s.handlePost)
	r.Get("/privacy", s.handlePrivacy)
	r.Get("/terms", s.handleTerms)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(rendering.Static())))

	// Crawlers
	r.Get("/blog/rss.xml", s.handleRSS)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.withCORS)
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			s.errorResponse(w, http.StatusNotFound, "not found")
		})

		r.Get("/jobs", s.handleAPIJobs)
		r.Get("/jobs/{slug}", s.handleAPIJob)
		r.Get("/jobs/{slug}/jsonld", s.handleAPIJobJSONLD)
		r.Get("/enums", s.handleAPIEnums)

		// Form posts
		r.Post("/lead", s.handleNewsletterLead)
		r.Post("/lead/employer-lead", s.handleEmployerLead)
		r.Post("/employer-lead", s.handleEmployerLead)
	})

	return r
}
