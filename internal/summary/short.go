package summary

import (
	"strings"

	"github.com/jonathan/studentjobs/internal/types"
)

// Separator joins the fragments of a short description.
const Separator = " — "

// ShortDescription builds the listing summary: gig incentive, sale incentive,
// then the first sentence of the plain-text description. Empty fragments are
// dropped, so the result is "" when nothing applies. The function has no hidden
// state and may be re-run whenever the source fields change.
func ShortDescription(job types.RawJob) string {
	parts := Incentives(job)
	if desc := FirstSentence(StripHTML(job.DescriptionHTML)); desc != "" {
		parts = append(parts, desc)
	}

	return strings.Join(parts, Separator)
}

// Incentives returns the displayable gig and sale incentives, in that order,
// e.g. ["€20 per gig", "€150 per shift"].
func Incentives(job types.RawJob) []string {
	parts := make([]string, 0, 3)
	if frag := incentiveFragment(job.GigIncentive(), "per gig"); frag != "" {
		parts = append(parts, frag)
	}
	if frag := incentiveFragment(job.SaleIncentive(), "per sale"); frag != "" {
		parts = append(parts, frag)
	}
	return parts
}

func incentiveFragment(inc types.Incentive, suffix string) string {
	switch v := inc.(type) {
	case types.AmountIncentive:
		amount, ok := formatAmount(float64(v))
		if !ok {
			return ""
		}
		return amount + " " + suffix
	case types.TextIncentive:
		return string(v)
	default:
		return ""
	}
}
