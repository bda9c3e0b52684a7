package linkcheck

import (
	"fmt"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/types"
)

// Target is a link together with where it was found, e.g. "job:courier".
type Target struct {
	URL    string
	Source string
}

// Targets collects the outbound links of the catalog and the blog. Each URL
// appears once, attributed to its first source. Internal blog links are
// skipped; they are served by the site itself.
func Targets(site types.Site, jobs []types.JobRecord, posts []blog.Post) ([]Target, error) {
	seen := make(map[string]bool)
	var targets []Target
	add := func(u, source string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		targets = append(targets, Target{URL: u, Source: source})
	}

	for _, j := range jobs {
		add(j.ExternalURL, "job:"+j.Slug)
	}

	for _, p := range posts {
		links, err := blog.Links(p.Body, site.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to extract links from post %s: %w", p.Slug, err)
		}
		for _, l := range links {
			if !l.Internal {
				add(l.URL, "post:"+p.Slug)
			}
		}
	}

	return targets, nil
}
