package server

import (
	"net/http"

	"github.com/jonathan/studentjobs/internal/leads"
	"go.uber.org/zap"
)

// maxFormBytes bounds the size of a lead form body.
const maxFormBytes = 64 << 10

// handleNewsletterLead accepts the homepage newsletter form. Bots that fill
// the honeypot get a plain 200 and nothing is recorded.
func (s *Server) handleNewsletterLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid form body")
		return
	}

	if leads.IsSpam(r.PostForm) {
		s.logger.Debug("Honeypot triggered", zap.String("form", "newsletter"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	s.leads.SubmitNewsletter(r.Context(), r.PostForm)
	http.Redirect(w, r, "/thank-you?type=newsletter", http.StatusSeeOther)
}

// handleEmployerLead accepts the employer submission form. The notification
// is best effort: the employer is redirected whether or not it was delivered.
func (s *Server) handleEmployerLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid form body")
		return
	}

	if !leads.IsSpam(r.PostForm) {
		s.leads.SubmitEmployer(r.Context(), r.PostForm)
	} else {
		s.logger.Debug("Honeypot triggered", zap.String("form", "employer"))
	}
	http.Redirect(w, r, "/employers/thank-you", http.StatusSeeOther)
}
