// Package catalog holds the immutable in-memory collection of job listings
// and the read accessors page renderers use.
package catalog

import (
	"strings"

	"github.com/jonathan/studentjobs/internal/summary"
	"github.com/jonathan/studentjobs/internal/types"
)

// Querier is the listing query surface. Renderers depend on it rather than on
// *Catalog so the backing store can change without touching them.
type Querier interface {
	JobBySlug(slug string) (types.JobRecord, bool)
	Jobs() []types.JobRecord
	FeaturedJobs() []types.JobRecord
}

// Catalog is built once and never mutated. All methods are safe for concurrent use.
type Catalog struct {
	jobs []types.JobRecord
}

var _ Querier = (*Catalog)(nil)

// Build derives the short description of every raw record and returns the catalog.
// Records keep their authored order. Nothing is deduplicated or validated here.
func Build(raw []types.RawJob) *Catalog {
	jobs := make([]types.JobRecord, 0, len(raw))
	for _, r := range raw {
		jobs = append(jobs, Complete(r))
	}
	return &Catalog{jobs: jobs}
}

// Complete attaches the derived short description to a deep copy of a raw record,
// so later changes to r do not reach the result.
func Complete(r types.RawJob) types.JobRecord {
	r = r.Clone()
	return types.JobRecord{
		RawJob:           r,
		ShortDescription: summary.ShortDescription(r),
	}
}

// JobBySlug returns a copy of the first record whose slug matches.
func (c *Catalog) JobBySlug(slug string) (types.JobRecord, bool) {
	for _, j := range c.jobs {
		if j.Slug == slug {
			return j.Clone(), true
		}
	}
	return types.JobRecord{}, false
}

// Jobs returns copies of every record in authored order.
func (c *Catalog) Jobs() []types.JobRecord {
	return cloneAll(c.jobs)
}

// FeaturedJobs returns the records promoted on the homepage, in catalog order.
func (c *Catalog) FeaturedJobs() []types.JobRecord {
	featured := make([]types.JobRecord, 0, len(c.jobs))
	for _, j := range c.jobs {
		if j.Featured {
			featured = append(featured, j.Clone())
		}
	}
	return featured
}

func cloneAll(jobs []types.JobRecord) []types.JobRecord {
	out := make([]types.JobRecord, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Clone())
	}
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Query holds the simple filters offered on the jobs index.
type Query struct {
	Text         string         // case-insensitive substring of title, organization or short description
	Category     types.Category // empty matches every category
	English      *bool          // nil matches both
	FeaturedOnly bool
}

// IsZero reports whether the query filters nothing.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Text) == "" && q.Category == "" && q.English == nil && !q.FeaturedOnly
}

// Filter returns the records of src matching q, preserving order.
func Filter(src Querier, q Query) []types.JobRecord {
	jobs := src.Jobs()
	if q.IsZero() {
		return jobs
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))
	matched := make([]types.JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if q.FeaturedOnly && !j.Featured {
			continue
		}
		if q.Category != "" && !j.HasCategory(q.Category) {
			continue
		}
		if q.English != nil && j.EnglishFriendly != *q.English {
			continue
		}
		if needle != "" && !matchesText(j, needle) {
			continue
		}
		matched = append(matched, j)
	}
	return matched
}

func matchesText(j types.JobRecord, needle string) bool {
	for _, field := range []string{j.Title, j.OrgName, j.ShortDescription, j.Area} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
