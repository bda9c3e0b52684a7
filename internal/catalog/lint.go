package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/studentjobs/internal/summary"
	"github.com/jonathan/studentjobs/internal/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// newValidator returns a validator that knows the "slug" tag used on RawJob.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the data-authoring invariants of a dataset: field rules,
// unique slugs, min ≤ max salary, validThrough ≥ datePosted, and that every
// stored short description matches a fresh derivation. It returns a *LintError
// listing all problems, or nil. Build never calls it.
func Validate(jobs []types.JobRecord) error {
	v := newValidator()
	var problems []Problem
	seen := make(map[string]int, len(jobs))

	for i, job := range jobs {
		slug := job.Slug
		if slug == "" {
			slug = fmt.Sprintf("#%d", i)
		}

		if err := v.Struct(job.RawJob); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, Problem{
						Slug:    slug,
						Field:   fe.Field(),
						Message: fmt.Sprintf("failed %q rule (value %v)", fe.Tag(), fe.Value()),
					})
				}
			} else {
				problems = append(problems, Problem{Slug: slug, Field: "(record)", Message: err.Error()})
			}
		}

		if job.Slug != "" {
			if first, dup := seen[job.Slug]; dup {
				problems = append(problems, Problem{
					Slug:    slug,
					Field:   "Slug",
					Message: fmt.Sprintf("duplicate of record #%d", first),
				})
			} else {
				seen[job.Slug] = i
			}
		}

		if job.BaseSalaryMin != nil && job.BaseSalaryMax != nil && *job.BaseSalaryMin > *job.BaseSalaryMax {
			problems = append(problems, Problem{
				Slug:    slug,
				Field:   "BaseSalaryMin",
				Message: fmt.Sprintf("minimum %v exceeds maximum %v", *job.BaseSalaryMin, *job.BaseSalaryMax),
			})
		}

		if job.ValidThrough != "" && job.DatePosted != "" {
			posted, perr := time.Parse(DateLayout, job.DatePosted)
			until, uerr := time.Parse(DateLayout, job.ValidThrough)
			if perr == nil && uerr == nil && until.Before(posted) {
				problems = append(problems, Problem{
					Slug:    slug,
					Field:   "ValidThrough",
					Message: fmt.Sprintf("%s is before datePosted %s", job.ValidThrough, job.DatePosted),
				})
			}
		}

		if want := summary.ShortDescription(job.RawJob); job.ShortDescription != want {
			problems = append(problems, Problem{
				Slug:    slug,
				Field:   "ShortDescription",
				Message: fmt.Sprintf("stale derived value %q, expected %q", job.ShortDescription, want),
			})
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &LintError{Problems: problems}
}
