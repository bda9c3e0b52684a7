// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/export"
	"github.com/jonathan/studentjobs/internal/linkcheck"
	"github.com/jonathan/studentjobs/internal/summary"
	"github.com/jonathan/studentjobs/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs the detail view of a listing.
func (p *Printer) PrintJob(job types.JobRecord) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.OrgName))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", job.EmploymentType.Label()))
	sb.WriteString(fmt.Sprintf("Posted:   %s\n", job.DatePosted))
	if job.ValidThrough != "" {
		sb.WriteString(fmt.Sprintf("Until:    %s\n", job.ValidThrough))
	}
	if pay, ok := summary.Money(job.BaseSalaryMin); ok {
		if maxPay, ok := summary.Money(job.BaseSalaryMax); ok {
			pay += "–" + maxPay
		}
		sb.WriteString(fmt.Sprintf("Pay:      %s\n", pay))
	}

	labels := make([]string, 0, len(job.Categories))
	for _, c := range job.Categories {
		labels = append(labels, c.Label())
	}
	sb.WriteString(fmt.Sprintf("Tags:     %s\n", strings.Join(labels, ", ")))

	var flags []string
	if job.Featured {
		flags = append(flags, "featured")
	}
	if job.EnglishFriendly {
		flags = append(flags, "english-friendly")
	}
	if job.DUO {
		flags = append(flags, "DUO")
	}
	if job.IsExternal() {
		flags = append(flags, "external")
	}
	if len(flags) > 0 {
		sb.WriteString(fmt.Sprintf("Flags:    %s\n", strings.Join(flags, ", ")))
	}

	if job.ShortDescription != "" {
		sb.WriteString("\n")
		sb.WriteString(job.ShortDescription)
	}

	p.printBox(strings.ToUpper(job.Slug), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobList outputs one line per listing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobList(jobs []types.JobRecord) {
	if len(jobs) == 0 {
		fmt.Fprintln(p.out, "No jobs found.")
		return
	}

	for _, j := range jobs {
		marker := " "
		if j.Featured {
			marker = "★"
		}
		fmt.Fprintf(p.out, "%s %-32s %s\n", marker, truncate(j.Slug, 32), truncate(j.Title+" · "+j.OrgName, 48))
	}
	fmt.Fprintf(p.out, "\n%d job(s)\n", len(jobs))
}

// PrintLintProblems outputs the problems found in the dataset.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLintProblems(problems []catalog.Problem) {
	if len(problems) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO PROBLEMS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", len(problems)))
	for i, pr := range problems {
		sb.WriteString(fmt.Sprintf("⚠ %s · %s\n", pr.Slug, pr.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", pr.Message))
		if i < len(problems)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CATALOG PROBLEMS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLinkResults outputs broken links in full and counts the healthy ones.
func (p *Printer) PrintLinkResults(results []linkcheck.Result) {
	var broken []linkcheck.Result
	for _, r := range results {
		if !r.OK() {
			broken = append(broken, r)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Checked %d link(s), %d broken\n", len(results), len(broken)))
	for i, r := range broken {
		if i == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more broken links\n", len(broken)-maxItemsToShow))
			break
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("✗ %s\n", r.URL))
		sb.WriteString(fmt.Sprintf("  from %s\n", r.Source))
		if r.StatusCode != 0 {
			sb.WriteString(fmt.Sprintf("  %s → %d\n", r.Method, r.StatusCode))
		} else {
			sb.WriteString(fmt.Sprintf("  %v\n", r.Err))
		}
	}

	p.printBox("LINK CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExportSummary outputs what an export wrote and where.
func (p *Printer) PrintExportSummary(dest string, sum export.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Destination: %s\n", dest))
	sb.WriteString(fmt.Sprintf("Files:       %d\n", sum.Files))
	sb.WriteString(fmt.Sprintf("Size:        %.1f KiB\n", float64(sum.Bytes)/1024))
	sb.WriteString(fmt.Sprintf("Took:        %s", sum.Duration.Round(time.Millisecond)))

	p.printBox("EXPORT COMPLETE", sb.String())
}
