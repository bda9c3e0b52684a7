package jsonld

import (
	"net/url"
	"regexp"

	"github.com/jonathan/studentjobs/internal/summary"
	"github.com/jonathan/studentjobs/internal/types"
)

const (
	defaultRegion  = "ZH"
	defaultCountry = "NL"
)

var jobPathPattern = regexp.MustCompile(`/jobs/.*$`)

// JobPostingDoc is the schema.org JobPosting emitted on a listing detail page.
type JobPostingDoc struct {
	Context               string           `json:"@context"`
	Type                  string           `json:"@type"`
	Title                 string           `json:"title"`
	Description           string           `json:"description"`
	DatePosted            string           `json:"datePosted"`
	ValidThrough          string           `json:"validThrough,omitempty"`
	EmploymentType        types.Employment `json:"employmentType"`
	HiringOrganization    Organization     `json:"hiringOrganization"`
	Identifier            PropertyValue    `json:"identifier"`
	JobLocation           Place            `json:"jobLocation"`
	BaseSalary            *MonetaryAmount  `json:"baseSalary,omitempty"`
	WorkHours             string           `json:"workHours,omitempty"`
	HiringOrganizationURL string           `json:"hiringOrganizationUrl,omitempty"`
	DirectApply           bool             `json:"directApply"`
}

// PropertyValue identifies a posting within its organization.
type PropertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Place wraps the postal address of a job location.
type Place struct {
	Type    string        `json:"@type"`
	Address PostalAddress `json:"address"`
}

// MonetaryAmount is the baseSalary block.
type MonetaryAmount struct {
	Type     string            `json:"@type"`
	Currency string            `json:"currency"`
	Value    QuantitativeValue `json:"value"`
}

// QuantitativeValue carries a salary range or a single value.
type QuantitativeValue struct {
	Type     string   `json:"@type"`
	UnitText string   `json:"unitText"`
	MinValue *float64 `json:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

// JobPosting maps a listing to its JobPosting document. canonicalURL is the
// absolute URL of the detail page; relative logo paths resolve against it and
// the organization's sameAs is the canonical URL with its /jobs/... path removed.
func JobPosting(job types.JobRecord, canonicalURL string) (*JobPostingDoc, error) {
	canonical, err := url.Parse(canonicalURL)
	if err != nil {
		return nil, &URLError{URL: canonicalURL, Message: "invalid canonical URL", Cause: err}
	}
	if !canonical.IsAbs() || canonical.Host == "" {
		return nil, &URLError{URL: canonicalURL, Message: "canonical URL must be absolute"}
	}

	org := Organization{
		Type:   "Organization",
		Name:   job.OrgName,
		SameAs: jobPathPattern.ReplaceAllString(canonicalURL, ""),
	}
	if job.LogoURL != "" {
		if ref, err := url.Parse(job.LogoURL); err == nil {
			org.Logo = canonical.ResolveReference(ref).String()
		}
	}

	region := job.AddressRegion
	if region == "" {
		region = defaultRegion
	}

	return &JobPostingDoc{
		Context:            Context,
		Type:               "JobPosting",
		Title:              job.Title,
		Description:        summary.StripHTML(job.DescriptionHTML),
		DatePosted:         job.DatePosted,
		ValidThrough:       job.ValidThrough,
		EmploymentType:     job.EmploymentType,
		HiringOrganization: org,
		Identifier: PropertyValue{
			Type:  "PropertyValue",
			Name:  job.OrgName,
			Value: job.Slug,
		},
		JobLocation: Place{
			Type: "Place",
			Address: PostalAddress{
				Type:            "PostalAddress",
				AddressLocality: job.AddressLocality,
				AddressRegion:   region,
				PostalCode:      job.PostalCode,
				StreetAddress:   job.StreetAddress,
				AddressCountry:  defaultCountry,
			},
		},
		BaseSalary:            baseSalary(job.RawJob),
		WorkHours:             job.WorkHours,
		HiringOrganizationURL: job.ExternalURL,
		DirectApply:           job.IsExternal(),
	}, nil
}

// baseSalary is omitted unless a currency and at least one non-zero bound are set.
// A lone maximum is repeated as value for consumers that ignore ranges.
func baseSalary(job types.RawJob) *MonetaryAmount {
	if job.Currency == "" || (isZero(job.BaseSalaryMin) && isZero(job.BaseSalaryMax)) {
		return nil
	}

	unit := job.PayUnit
	if unit == "" {
		unit = types.PayUnitHour
	}

	value := QuantitativeValue{
		Type:     "QuantitativeValue",
		UnitText: string(unit),
		MinValue: job.BaseSalaryMin,
		MaxValue: job.BaseSalaryMax,
	}
	if isZero(job.BaseSalaryMin) && !isZero(job.BaseSalaryMax) {
		value.Value = job.BaseSalaryMax
	}

	return &MonetaryAmount{
		Type:     "MonetaryAmount",
		Currency: job.Currency,
		Value:    value,
	}
}

func isZero(v *float64) bool {
	return v == nil || *v == 0
}
