package main

import (
	"fmt"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/jsonld"
	"github.com/jonathan/studentjobs/internal/schemas"
	"github.com/spf13/cobra"
)

func newJSONLDCmd(a *app) *cobra.Command {
	var post bool

	cmd := &cobra.Command{
		Use:   "jsonld <slug>",
		Short: "Print the structured data of a listing or blog post",
		Long:  "Prints the JobPosting of a listing (or the Article of a blog post with --post) and validates it against the embedded schema.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			site := a.cfg.Site

			var doc any
			var schema string
			if post {
				posts, err := blog.Load()
				if err != nil {
					return err
				}
				p, ok := posts.Post(slug)
				if !ok {
					return fmt.Errorf("post not found: %s", slug)
				}
				words, err := blog.WordCount(p.Body)
				if err != nil {
					return err
				}
				doc, schema = jsonld.Article(p, words, site), schemas.ArticleSchema
			} else {
				c, err := catalog.Load()
				if err != nil {
					return err
				}
				job, ok := c.JobBySlug(slug)
				if !ok {
					return fmt.Errorf("job not found: %s", slug)
				}
				posting, err := jsonld.JobPosting(job, site.JobURL(job.Slug))
				if err != nil {
					return err
				}
				doc, schema = posting, schemas.JobPostingSchema
			}

			if err := schemas.ValidateDocument(schema, doc); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&post, "post", false, "Treat the slug as a blog post")
	return cmd
}
