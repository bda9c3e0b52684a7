package blog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WordsPerMinute is the reading speed used for ReadingMinutes.
const WordsPerMinute = 200

// Link is a hyperlink found in a post body, resolved against the site origin.
type Link struct {
	URL      string
	Text     string
	Internal bool
}

// WordCount counts the words of the visible text of an HTML fragment.
func WordCount(htmlContent string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return 0, &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}
	// Count text nodes one by one; Selection.Text glues adjacent blocks together.
	words := 0
	doc.Find("body, body *").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			words += len(strings.Fields(s.Text()))
		}
	})
	return words, nil
}

// ReadingMinutes rounds up to whole minutes, with a minimum of one.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 1
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// Links extracts every distinct <a href> of an HTML fragment. Relative links
// are resolved against baseURL and marked Internal; fragments are dropped.
func Links(htmlContent, baseURL string) ([]Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse base URL", Cause: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &ExtractionError{Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL)}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	seen := make(map[string]bool)
	links := make([]Link, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		abs.Fragment = ""
		u := abs.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, Link{
			URL:      u,
			Text:     strings.TrimSpace(s.Text()),
			Internal: abs.Host == base.Host,
		})
	})

	return links, nil
}
