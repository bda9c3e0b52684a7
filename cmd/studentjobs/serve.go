package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/config"
	"github.com/jonathan/studentjobs/internal/leads"
	"github.com/jonathan/studentjobs/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the website",
		Long:  "Start the HTTP server that renders the job board, the blog and the JSON API. Stops gracefully on SIGINT or SIGTERM.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a.cfg, a.logger)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides config)")
	return cmd
}

// newDeps loads the embedded content and picks the lead notifier.
func newDeps(cfg *config.Config, logger *zap.Logger) (server.Deps, error) {
	jobs, err := catalog.Load()
	if err != nil {
		return server.Deps{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	posts, err := blog.Load()
	if err != nil {
		return server.Deps{}, fmt.Errorf("failed to load blog: %w", err)
	}

	var notifier leads.Notifier
	resend, err := leads.NewResendNotifier(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.LeadsTo)
	switch {
	case errors.Is(err, leads.ErrNotConfigured):
		logger.Warn("Email not configured, employer leads are only logged")
		notifier = leads.NewLogNotifier(logger)
	case err != nil:
		return server.Deps{}, fmt.Errorf("failed to configure email: %w", err)
	default:
		notifier = resend
	}

	return server.Deps{
		Catalog: jobs,
		Posts:   posts,
		Leads:   leads.NewService(notifier, logger.Named("leads"), cfg.Email.Timeout),
	}, nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	deps, err := newDeps(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, deps, logger.Named("http"))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gCtx)
	})
	// Authoring mistakes do not stop the site; they are reported once at startup.
	g.Go(func() error {
		if err := catalog.Validate(deps.Catalog.Jobs()); err != nil {
			logger.Warn("Catalog has problems", zap.Error(err))
		}
		expired := 0
		today := time.Now().Format(time.DateOnly)
		for _, j := range deps.Catalog.Jobs() {
			if j.ValidThrough != "" && j.ValidThrough < today {
				expired++
			}
		}
		if expired > 0 {
			logger.Info("Listings past their validThrough date", zap.Int("count", expired))
		}
		return nil
	})
	return g.Wait()
}
