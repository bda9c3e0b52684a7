package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/jsonld"
	"github.com/jonathan/studentjobs/internal/linkcheck"
	"github.com/jonathan/studentjobs/internal/observability"
	"github.com/jonathan/studentjobs/internal/schemas"
	"github.com/jonathan/studentjobs/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newJobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and check the job catalog",
	}
	cmd.AddCommand(
		newJobsListCmd(),
		newJobsShowCmd(),
		newJobsLintCmd(a),
		newJobsCheckLinksCmd(a),
	)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newJobsListCmd() *cobra.Command {
	var (
		featured bool
		category string
		english  string
		text     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Load()
			if err != nil {
				return err
			}

			q := catalog.Query{Text: text, FeaturedOnly: featured}
			if category != "" {
				if !types.Category(category).Valid() {
					return fmt.Errorf("unknown category %q", category)
				}
				q.Category = types.Category(category)
			}
			switch english {
			case "":
			case "true", "false":
				v := english == "true"
				q.English = &v
			default:
				return fmt.Errorf("--english must be true or false")
			}

			jobs := catalog.Filter(c, q)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), jobs)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintJobList(jobs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "Only featured listings")
	cmd.Flags().StringVar(&category, "category", "", "Only listings in this category")
	cmd.Flags().StringVar(&english, "english", "", "true for English-friendly, false for Dutch required")
	cmd.Flags().StringVarP(&text, "query", "q", "", "Case-insensitive text search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the records as JSON")
	return cmd
}

func newJobsShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a single listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load()
			if err != nil {
				return err
			}
			job, ok := c.JobBySlug(args[0])
			if !ok {
				return fmt.Errorf("job not found: %s", args[0])
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), job)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintJob(job)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}

// lintProblems runs the catalog checks and validates the structured data of
// every listing against the JobPosting schema.
func lintProblems(raw []types.RawJob, site types.Site) ([]catalog.Problem, error) {
	jobs := catalog.Build(raw).Jobs()

	var problems []catalog.Problem
	if err := catalog.Validate(jobs); err != nil {
		var lintErr *catalog.LintError
		if !errors.As(err, &lintErr) {
			return nil, err
		}
		problems = append(problems, lintErr.Problems...)
	}

	for _, j := range jobs {
		doc, err := jsonld.JobPosting(j, site.JobURL(j.Slug))
		if err != nil {
			problems = append(problems, catalog.Problem{Slug: j.Slug, Field: "JobPosting", Message: err.Error()})
			continue
		}
		if err := schemas.ValidateJobPosting(doc); err != nil {
			var verr *schemas.ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			for _, fe := range verr.Errors {
				problems = append(problems, catalog.Problem{Slug: j.Slug, Field: "JobPosting." + fe.Field, Message: fe.Message})
			}
		}
	}
	return problems, nil
}

func newJobsLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check the catalog for authoring mistakes",
		Long:  "Validates field rules, unique slugs, salary ranges, dates, stored short descriptions and the generated JobPosting structured data.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := catalog.RawJobs(time.Now())
			if err != nil {
				return err
			}
			problems, err := lintProblems(raw, a.cfg.Site)
			if err != nil {
				return err
			}

			observability.NewPrinter(cmd.OutOrStdout()).PrintLintProblems(problems)
			if len(problems) > 0 {
				return fmt.Errorf("catalog has %d problem(s)", len(problems))
			}
			return nil
		},
	}
}

func newJobsCheckLinksCmd(a *app) *cobra.Command {
	opts := linkcheck.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "check-links",
		Short: "Check external apply pages and blog links",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Load()
			if err != nil {
				return err
			}
			posts, err := blog.Load()
			if err != nil {
				return err
			}

			targets, err := linkcheck.Targets(a.cfg.Site, c.Jobs(), posts.Posts())
			if err != nil {
				return err
			}
			a.logger.Info("Checking links", zap.Int("count", len(targets)), zap.Int("concurrency", opts.Concurrency))

			results, err := linkcheck.NewChecker(opts).CheckAll(cmd.Context(), targets)
			observability.NewPrinter(cmd.OutOrStdout()).PrintLinkResults(results)
			if err != nil {
				return err
			}
			for _, r := range results {
				if !r.OK() {
					return errors.New("some links are broken")
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "Maximum requests in flight")
	cmd.Flags().Float64Var(&opts.RequestsPerSecond, "rps", opts.RequestsPerSecond, "Maximum requests per second")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Per-request timeout")
	return cmd
}
