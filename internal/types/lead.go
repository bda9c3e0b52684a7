package types

import (
	"github.com/go-playground/validator/v10"
)

// EmployerLead is the payload of the employer submission form.
type EmployerLead struct {
	ID              string   `json:"id"`
	Company         string   `json:"company" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	Title           string   `json:"title" validate:"required"`
	EmploymentType  string   `json:"employmentType" validate:"omitempty,oneof=PART_TIME FULL_TIME CONTRACTOR TEMPORARY INTERN VOLUNTEER"`
	Category        string   `json:"category" validate:"omitempty,oneof=delivery sales hospitality retail tutoring events fieldwork"`
	City            string   `json:"city"`
	Area            string   `json:"area"`
	BaseSalaryMin   *float64 `json:"baseSalaryMin,omitempty" validate:"omitempty,gte=0"`
	BaseSalaryMax   *float64 `json:"baseSalaryMax,omitempty" validate:"omitempty,gte=0"`
	ExternalURL     string   `json:"externalUrl" validate:"omitempty,url"`
	LogoURL         string   `json:"logoUrl" validate:"omitempty,url"`
	LogoAlt         string   `json:"logoAlt"`
	EnglishFriendly bool     `json:"englishFriendly"`
	Description     string   `json:"description"`
	SubmittedAt     string   `json:"submittedAt"`
}

// NewsletterSignup is the payload of the homepage newsletter form.
type NewsletterSignup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email" validate:"required,email"`
	City        string `json:"city"`
	SubmittedAt string `json:"submittedAt"`
}

// Validate validates the EmployerLead using the validator.
func (l *EmployerLead) Validate() error {
	validate := validator.New()
	return validate.Struct(l)
}

// Validate validates the NewsletterSignup using the validator.
func (s *NewsletterSignup) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
