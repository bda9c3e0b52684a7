package server

import (
	"net/http"

	"github.com/jonathan/studentjobs/internal/seo"
	"go.uber.org/zap"
)

func (s *Server) handleSitemap(w http.ResponseWriter, _ *http.Request) {
	data, err := seo.Sitemap(s.site, s.posts.Posts(), s.catalog.Jobs())
	if err != nil {
		s.logger.Error("Failed to build sitemap", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(seo.Robots(s.site))
}

func (s *Server) handleRSS(w http.ResponseWriter, _ *http.Request) {
	data, err := seo.Feed(s.site, s.posts.Feed(), s.now())
	if err != nil {
		s.logger.Error("Failed to build feed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, s-maxage=3600, stale-while-revalidate=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}
