package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/jsonld"
	"github.com/jonathan/studentjobs/internal/types"
	"go.uber.org/zap"
)

// JobsResponse is the body of GET /api/jobs.
type JobsResponse struct {
	Jobs  []types.JobRecord `json:"jobs"`
	Count int               `json:"count"`
}

// EnumsResponse lists the values accepted by the employer form.
type EnumsResponse struct {
	EmploymentTypes []EnumValue `json:"employmentTypes"`
	Categories      []EnumValue `json:"categories"`
	PayUnits        []string    `json:"payUnits"`
}

// EnumValue is a form option.
type EnumValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "jobs": s.catalog.Len()})
}

func (s *Server) handleAPIJobs(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jobs := catalog.Filter(s.catalog, q)
	s.jsonResponse(w, http.StatusOK, JobsResponse{Jobs: jobs, Count: len(jobs)})
}

func (s *Server) handleAPIJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.lookupJob(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleAPIJobJSONLD(w http.ResponseWriter, r *http.Request) {
	job, err := s.lookupJob(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	doc, err := jsonld.JobPosting(job, s.site.JobURL(job.Slug))
	if err != nil {
		s.logger.Error("Failed to build JobPosting", zap.String("slug", job.Slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to build structured data")
		return
	}

	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	js, err := jsonld.Marshal(doc)
	if err != nil {
		s.logger.Warn("Error encoding JSON-LD response", zap.Error(err))
		return
	}
	_, _ = w.Write([]byte(js))
}

func (s *Server) handleAPIEnums(w http.ResponseWriter, _ *http.Request) {
	resp := EnumsResponse{}
	for _, e := range types.EmploymentTypes() {
		resp.EmploymentTypes = append(resp.EmploymentTypes, EnumValue{Value: string(e), Label: e.Label()})
	}
	for _, c := range types.Categories() {
		resp.Categories = append(resp.Categories, EnumValue{Value: string(c), Label: c.Label()})
	}
	for _, u := range types.PayUnits() {
		resp.PayUnits = append(resp.PayUnits, string(u))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) lookupJob(r *http.Request) (types.JobRecord, error) {
	slug := chi.URLParam(r, "slug")
	job, ok := s.catalog.JobBySlug(slug)
	if !ok {
		return types.JobRecord{}, &ErrNotFound{Resource: "job", ID: slug}
	}
	return job, nil
}
