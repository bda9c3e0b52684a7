// Package leads turns the employer and newsletter form posts into lead records
// and forwards employer leads to a best-effort notifier.
package leads

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/studentjobs/internal/types"
)

// HoneypotField is the hidden input bots fill in and people never see.
const HoneypotField = "website"

// DefaultCity is used when the employer leaves the city blank.
const DefaultCity = types.ServedCity

// IsSpam reports whether the honeypot field carries a value.
func IsSpam(form url.Values) bool {
	return strings.TrimSpace(form.Get(HoneypotField)) != ""
}

// ParseEmployerLead maps the employer form onto an EmployerLead. Nothing is
// rejected here: unparsable numbers become nil and missing text stays empty.
func ParseEmployerLead(form url.Values, now time.Time) types.EmployerLead {
	city := field(form, "city")
	if city == "" {
		city = DefaultCity
	}
	return types.EmployerLead{
		ID:              uuid.NewString(),
		Company:         field(form, "company"),
		Name:            field(form, "name"),
		Email:           field(form, "email"),
		Phone:           field(form, "phone"),
		Title:           field(form, "title"),
		EmploymentType:  field(form, "employmentType"),
		Category:        field(form, "category"),
		City:            city,
		Area:            field(form, "area"),
		BaseSalaryMin:   number(form, "baseSalaryMin"),
		BaseSalaryMax:   number(form, "baseSalaryMax"),
		ExternalURL:     field(form, "externalUrl"),
		LogoURL:         field(form, "logoUrl"),
		LogoAlt:         field(form, "logoAlt"),
		EnglishFriendly: form.Get("englishFriendly") == "on",
		Description:     field(form, "description"),
		SubmittedAt:     now.UTC().Format(time.RFC3339Nano),
	}
}

// ParseNewsletterSignup maps the homepage newsletter form onto a NewsletterSignup.
func ParseNewsletterSignup(form url.Values, now time.Time) types.NewsletterSignup {
	return types.NewsletterSignup{
		ID:          uuid.NewString(),
		Name:        field(form, "name"),
		Email:       field(form, "email"),
		City:        field(form, "city"),
		SubmittedAt: now.UTC().Format(time.RFC3339Nano),
	}
}

func field(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

func number(form url.Values, key string) *float64 {
	raw := field(form, key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}
