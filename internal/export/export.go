// Package export renders the whole site to static files by driving the HTTP
// handler in-process, then stores them in a directory or an S3 bucket.
package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/seo"
	"github.com/jonathan/studentjobs/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NotFoundPath is requested to produce 404.html.
const NotFoundPath = "/404.html"

// DefaultConcurrency bounds the number of pages rendered at once.
const DefaultConcurrency = 4

// assetPaths are exported next to the pages listed in the sitemap.
var assetPaths = []string{"/sitemap.xml", "/robots.txt", "/blog/rss.xml", "/static/site.css"}

// Summary reports what an export wrote.
type Summary struct {
	Files    int
	Bytes    int64
	Duration time.Duration
}

// Exporter renders paths through handler and stores them in sink.
type Exporter struct {
	handler     http.Handler
	sink        Sink
	logger      *zap.Logger
	concurrency int
}

// New creates an Exporter.
func New(handler http.Handler, sink Sink, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{handler: handler, sink: sink, logger: logger, concurrency: DefaultConcurrency}
}

// Paths lists every site-relative path to export: the sitemap pages, the
// crawler and static assets, then the 404 page.
func Paths(site types.Site, posts []blog.Post, jobs []types.JobRecord) []string {
	base := strings.TrimRight(site.BaseURL, "/")
	urls := seo.SitemapURLs(site, posts, jobs)

	paths := make([]string, 0, len(urls)+len(assetPaths)+1)
	for _, u := range urls {
		p := strings.TrimPrefix(u.Loc, base)
		if p == "" {
			p = "/"
		}
		paths = append(paths, p)
	}
	paths = append(paths, assetPaths...)
	return append(paths, NotFoundPath)
}

// Key maps a site path to the file it is stored as. Paths without an
// extension become directory indexes.
func Key(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "index.html"
	}
	if path.Ext(p) != "" {
		return p
	}
	return p + "/index.html"
}

// Run renders and stores every path. It stops at the first failure.
func (e *Exporter) Run(ctx context.Context, paths []string) (Summary, error) {
	start := time.Now()
	var mu sync.Mutex
	var sum Summary

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, p := range paths {
		g.Go(func() error {
			f, err := e.render(gCtx, p)
			if err != nil {
				return err
			}
			if err := e.sink.Put(gCtx, f); err != nil {
				return err
			}
			e.logger.Debug("Exported file", zap.String("path", p), zap.String("key", f.Key), zap.Int("bytes", len(f.Body)))

			mu.Lock()
			sum.Files++
			sum.Bytes += int64(len(f.Body))
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	sum.Duration = time.Since(start)
	if err != nil {
		return sum, err
	}

	e.logger.Info("Export finished", zap.Int("files", sum.Files), zap.Int64("bytes", sum.Bytes), zap.Duration("duration", sum.Duration))
	return sum, nil
}

func (e *Exporter) render(ctx context.Context, p string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, &Error{Op: "render", Path: p, Message: "cancelled", Cause: err}
	}

	req := httptest.NewRequest(http.MethodGet, p, nil).WithContext(ctx)
	req.RemoteAddr = "127.0.0.1:0"
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	want := http.StatusOK
	if p == NotFoundPath {
		want = http.StatusNotFound
	}
	if rec.Code != want {
		return File{}, &Error{Op: "render", Path: p, Message: http.StatusText(rec.Code)}
	}

	return File{
		Key:         Key(p),
		ContentType: rec.Header().Get("Content-Type"),
		Body:        rec.Body.Bytes(),
	}, nil
}
