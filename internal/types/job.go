// Package types provides type definitions for structured data used throughout the student jobs site.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// Employment is the schema.org employmentType of a listing.
type Employment string

// Employment values accepted by search engines for JobPosting.employmentType.
const (
	EmploymentPartTime   Employment = "PART_TIME"
	EmploymentFullTime   Employment = "FULL_TIME"
	EmploymentContractor Employment = "CONTRACTOR"
	EmploymentTemporary  Employment = "TEMPORARY"
	EmploymentIntern     Employment = "INTERN"
	EmploymentVolunteer  Employment = "VOLUNTEER"
)

// Category groups listings on the site and in the sitemap.
type Category string

// Listing categories
const (
	CategoryDelivery    Category = "delivery"
	CategorySales       Category = "sales"
	CategoryHospitality Category = "hospitality"
	CategoryRetail      Category = "retail"
	CategoryTutoring    Category = "tutoring"
	CategoryEvents      Category = "events"
	CategoryFieldwork   Category = "fieldwork"
)

// PayUnit is the period a base salary refers to.
type PayUnit string

// Pay units
const (
	PayUnitHour  PayUnit = "HOUR"
	PayUnitMonth PayUnit = "MONTH"
)

// CurrencyEUR is the only supported salary currency.
const CurrencyEUR = "EUR"

// ServedCity is the addressLocality of every listing.
const ServedCity = "Rotterdam"

// EmploymentTypes lists employment values in display order. Form selects are built from it.
func EmploymentTypes() []Employment {
	return []Employment{
		EmploymentPartTime,
		EmploymentFullTime,
		EmploymentContractor,
		EmploymentTemporary,
		EmploymentIntern,
		EmploymentVolunteer,
	}
}

// Categories lists the category enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryDelivery,
		CategorySales,
		CategoryHospitality,
		CategoryRetail,
		CategoryTutoring,
		CategoryEvents,
		CategoryFieldwork,
	}
}

// PayUnits lists the pay unit enumeration.
func PayUnits() []PayUnit {
	return []PayUnit{PayUnitHour, PayUnitMonth}
}

// Valid reports whether e is part of the enumeration.
func (e Employment) Valid() bool {
	for _, v := range EmploymentTypes() {
		if v == e {
			return true
		}
	}
	return false
}

// Label returns a human-readable form, e.g. "Part-time".
func (e Employment) Label() string {
	switch e {
	case EmploymentPartTime:
		return "Part-time"
	case EmploymentFullTime:
		return "Full-time"
	case EmploymentContractor:
		return "Contractor"
	case EmploymentTemporary:
		return "Temporary"
	case EmploymentIntern:
		return "Internship"
	case EmploymentVolunteer:
		return "Volunteer"
	default:
		return string(e)
	}
}

// Valid reports whether c is part of the enumeration.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if v == c {
			return true
		}
	}
	return false
}

// Label returns the capitalized category name.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return string(c[0]-'a'+'A') + string(c[1:])
}

// RawJob is a hand-authored listing: every JobRecord field except the derived short description.
type RawJob struct {
	Slug            string     `json:"slug" yaml:"slug" validate:"required,slug"`
	Title           string     `json:"title" yaml:"title" validate:"required"`
	OrgName         string     `json:"orgName" yaml:"orgName" validate:"required"`
	DescriptionHTML string     `json:"descriptionHtml" yaml:"descriptionHtml"`
	EmploymentType  Employment `json:"employmentType" yaml:"employmentType" validate:"required,oneof=PART_TIME FULL_TIME CONTRACTOR TEMPORARY INTERN VOLUNTEER"`

	BaseSalaryMin *float64 `json:"baseSalaryMin,omitempty" yaml:"baseSalaryMin,omitempty" validate:"omitempty,gte=0"`
	BaseSalaryMax *float64 `json:"baseSalaryMax,omitempty" yaml:"baseSalaryMax,omitempty" validate:"omitempty,gte=0"`
	Currency      string   `json:"currency,omitempty" yaml:"currency,omitempty" validate:"omitempty,oneof=EUR"`
	PayUnit       PayUnit  `json:"payUnit,omitempty" yaml:"payUnit,omitempty" validate:"omitempty,oneof=HOUR MONTH"`

	AddressLocality string `json:"addressLocality" yaml:"addressLocality" validate:"required,eq=Rotterdam"`
	AddressRegion   string `json:"addressRegion,omitempty" yaml:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	StreetAddress   string `json:"streetAddress,omitempty" yaml:"streetAddress,omitempty"`
	Area            string `json:"area,omitempty" yaml:"area,omitempty"`

	EnglishFriendly bool       `json:"englishFriendly,omitempty" yaml:"englishFriendly,omitempty"`
	DUO             bool       `json:"duo,omitempty" yaml:"duo,omitempty"`
	WorkHours       string     `json:"workHours,omitempty" yaml:"workHours,omitempty"`
	DatePosted      string     `json:"datePosted" yaml:"datePosted" validate:"required,datetime=2006-01-02"`
	ValidThrough    string     `json:"validThrough,omitempty" yaml:"validThrough,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Categories      []Category `json:"categories" yaml:"categories" validate:"min=1,dive,oneof=delivery sales hospitality retail tutoring events fieldwork"`
	Featured        bool       `json:"featured,omitempty" yaml:"featured,omitempty"`

	// ExternalURL turns the listing card into an outbound apply link.
	ExternalURL string `json:"externalUrl,omitempty" yaml:"externalUrl,omitempty" validate:"omitempty,url"`

	PerGigAmount      *float64 `json:"perGigAmount,omitempty" yaml:"perGigAmount,omitempty"`
	PerSaleAmount     *float64 `json:"perSaleAmount,omitempty" yaml:"perSaleAmount,omitempty"`
	PerGigAmountText  string   `json:"perGigAmountText,omitempty" yaml:"perGigAmountText,omitempty"`
	PerSaleAmountText string   `json:"perSaleAmountText,omitempty" yaml:"perSaleAmountText,omitempty"`

	LogoURL      string `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty" validate:"omitempty,startswith=/|url"`
	LogoAlt      string `json:"logoAlt,omitempty" yaml:"logoAlt,omitempty"`
	HeroImageURL string `json:"heroImageUrl,omitempty" yaml:"heroImageUrl,omitempty" validate:"omitempty,startswith=/|url"`
	HeroImageAlt string `json:"heroImageAlt,omitempty" yaml:"heroImageAlt,omitempty"`
	BrandColor   string `json:"brandColor,omitempty" yaml:"brandColor,omitempty" validate:"omitempty,hexcolor"`
}

// JobRecord is a complete catalog entry.
type JobRecord struct {
	RawJob `yaml:",inline"`

	// ShortDescription is derived from the description and incentive fields.
	// The wire key keeps the spelling the page templates were written against.
	ShortDescription string `json:"shortDescrition" yaml:"shortDescrition"`
}

// Clone returns a deep copy of j that shares no slices or pointers with it.
func (j RawJob) Clone() RawJob {
	j.BaseSalaryMin = cloneAmount(j.BaseSalaryMin)
	j.BaseSalaryMax = cloneAmount(j.BaseSalaryMax)
	j.PerGigAmount = cloneAmount(j.PerGigAmount)
	j.PerSaleAmount = cloneAmount(j.PerSaleAmount)
	j.Categories = slices.Clone(j.Categories)
	return j
}

// Clone returns a deep copy of j.
func (j JobRecord) Clone() JobRecord {
	j.RawJob = j.RawJob.Clone()
	return j
}

func cloneAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// GigIncentive resolves the per-gig amount/text pair.
func (j RawJob) GigIncentive() Incentive {
	return ResolveIncentive(j.PerGigAmount, j.PerGigAmountText)
}

// SaleIncentive resolves the per-sale amount/text pair.
func (j RawJob) SaleIncentive() Incentive {
	return ResolveIncentive(j.PerSaleAmount, j.PerSaleAmountText)
}

// IsExternal reports whether the listing redirects to an outbound apply page.
func (j RawJob) IsExternal() bool {
	return j.ExternalURL != ""
}

// HasCategory reports whether the listing is tagged with c.
func (j RawJob) HasCategory(c Category) bool {
	for _, v := range j.Categories {
		if v == c {
			return true
		}
	}
	return false
}
