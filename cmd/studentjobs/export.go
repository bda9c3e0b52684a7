package main

import (
	"fmt"

	"github.com/jonathan/studentjobs/internal/export"
	"github.com/jonathan/studentjobs/internal/observability"
	"github.com/jonathan/studentjobs/internal/server"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the whole site to static files",
		Long: `Render every page, the sitemap, robots.txt, the RSS feed and static assets.

The destination is a local directory or s3://bucket/prefix. S3 credentials come
from the default AWS chain; region and endpoint from the export config section.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var sink export.Sink = export.DirSink{Root: dest}
			if bucket, prefix, ok := export.ParseDestination(dest); ok {
				s3Sink, err := export.NewS3Sink(ctx, export.S3Config{
					Bucket:    bucket,
					Prefix:    prefix,
					Region:    a.cfg.Export.S3Region,
					Endpoint:  a.cfg.Export.S3Endpoint,
					PathStyle: a.cfg.Export.S3PathStyle,
				})
				if err != nil {
					return err
				}
				sink = s3Sink
			}

			deps, err := newDeps(a.cfg, a.logger)
			if err != nil {
				return err
			}
			// Rendering drives the handler in-process; nothing needs limiting.
			cfg := *a.cfg
			cfg.RateLimit.Enabled = false
			srv, err := server.New(&cfg, deps, a.logger.Named("http"))
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			paths := export.Paths(cfg.Site, deps.Posts.Posts(), deps.Catalog.Jobs())
			sum, err := export.New(srv.Handler(), sink, a.logger.Named("export")).Run(ctx, paths)
			if err != nil {
				return err
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintExportSummary(dest, sum)
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "public", "Output directory or s3://bucket/prefix")
	return cmd
}
