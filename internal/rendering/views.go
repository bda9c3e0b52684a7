package rendering

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/summary"
	"github.com/jonathan/studentjobs/internal/types"
)

// JobCard is a listing as shown in grids and on the detail page.
type JobCard struct {
	types.JobRecord
	Href     string
	External bool
	Meta     string
	Initial  string
	LogoText string
}

// NewJobCard prepares a record for display. External listings link straight
// to the employer's apply page.
func NewJobCard(job types.JobRecord) JobCard {
	card := JobCard{
		JobRecord: job,
		Href:      "/jobs/" + job.Slug,
		External:  job.IsExternal(),
		Meta:      MetaLine(job.RawJob),
		Initial:   "•",
		LogoText:  job.LogoAlt,
	}
	if card.External {
		card.Href = job.ExternalURL
	}
	if r, _ := utf8.DecodeRuneInString(job.OrgName); r != utf8.RuneError {
		card.Initial = strings.ToUpper(string(r))
	}
	if card.LogoText == "" {
		card.LogoText = job.OrgName + " logo"
	}
	return card
}

// NewJobCards maps NewJobCard over jobs.
func NewJobCards(jobs []types.JobRecord) []JobCard {
	cards := make([]JobCard, 0, len(jobs))
	for _, j := range jobs {
		cards = append(cards, NewJobCard(j))
	}
	return cards
}

// MetaLine is the summary row under a listing, e.g.
// "€14–€16/hour • 8-20h/week • Centrum • English-friendly".
func MetaLine(job types.RawJob) string {
	parts := make([]string, 0, 4)

	if minPay, ok := summary.Money(job.BaseSalaryMin); ok {
		pay := minPay
		if maxPay, ok := summary.Money(job.BaseSalaryMax); ok {
			pay += "–" + maxPay
		}
		unit := job.PayUnit
		if unit == "" {
			unit = types.PayUnitHour
		}
		parts = append(parts, pay+"/"+strings.ToLower(string(unit)))
	} else {
		parts = append(parts, "Pay: N/A")
	}

	if job.WorkHours != "" {
		parts = append(parts, job.WorkHours)
	} else {
		parts = append(parts, "Hours: N/A")
	}

	if job.Area != "" {
		parts = append(parts, job.Area)
	}

	if job.EnglishFriendly {
		parts = append(parts, "English-friendly")
	} else {
		parts = append(parts, "Dutch required")
	}

	return strings.Join(parts, " • ")
}

// CategoryLink is an entry of the category grid.
type CategoryLink struct {
	Category types.Category
	Label    string
	Href     string
	Count    int
}

// CategoryLinks lists every category with the number of listings tagged with it.
func CategoryLinks(jobs []types.JobRecord) []CategoryLink {
	links := make([]CategoryLink, 0, len(types.Categories()))
	for _, c := range types.Categories() {
		count := 0
		for _, j := range jobs {
			if j.HasCategory(c) {
				count++
			}
		}
		links = append(links, CategoryLink{
			Category: c,
			Label:    c.Label(),
			Href:     "/categories/" + string(c),
			Count:    count,
		})
	}
	return links
}

// FAQEntry is a question shown on a page that is not a blog post.
type FAQEntry = blog.FAQ

// HomeData feeds the home page.
type HomeData struct {
	Filters    Filters // always empty; shares the search form partial
	Featured   []JobCard
	Categories []CategoryLink
	Posts      []blog.Post
	FAQ        []FAQEntry
}

// Filters echoes the jobs index query back into the search form.
type Filters struct {
	Text     string
	Category string
	English  string
}

// JobsData feeds the jobs index and the category pages.
type JobsData struct {
	Heading    string
	Intro      string
	Jobs       []JobCard
	Filters    Filters
	Categories []CategoryLink
}

// JobData feeds the job detail page.
type JobData struct {
	Job         JobCard
	Description template.HTML
	Incentives  []string
	Categories  []CategoryLink
}

// CategoriesData feeds the category index.
type CategoriesData struct {
	Categories []CategoryLink
}

// EmployersData feeds the employer submission page.
type EmployersData struct {
	EmploymentTypes []types.Employment
	Categories      []types.Category
	City            string
	HoneypotField   string
	FAQ             []FAQEntry
}

// ThankYouData feeds the acknowledgement pages.
type ThankYouData struct {
	Heading string
	Message string
	Back    string
}

// PostCard is a post with its reading time, as listed on the blog index.
type PostCard struct {
	blog.Post
	ReadingMinutes int
}

// BlogData feeds the blog index.
type BlogData struct {
	Posts []PostCard
}

// PostData feeds a blog post page.
type PostData struct {
	Post           blog.Post
	Body           template.HTML
	ReadingMinutes int
	Related        []blog.Post
}

// StaticData feeds simple text pages such as the privacy policy.
type StaticData struct {
	Heading    string
	Paragraphs []string
}

// NotFoundData feeds the 404 page.
type NotFoundData struct {
	Message string
}
