package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/jonathan/studentjobs/internal/blog"
	"github.com/jonathan/studentjobs/internal/catalog"
	"github.com/jonathan/studentjobs/internal/config"
	"github.com/jonathan/studentjobs/internal/leads"
	"github.com/jonathan/studentjobs/internal/server"
	"github.com/jonathan/studentjobs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAPIError struct {
	code string
}

func (e *mockAPIError) Error() string                 { return e.code }
func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.code }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

var _ smithy.APIError = (*mockAPIError)(nil)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string]string)
		f.types = make(map[string]string)
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = string(body)
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func testHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<h1>home</h1>"))
	})
	mux.HandleFunc("/jobs/courier", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<h1>courier</h1>"))
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte("<urlset/>"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<h1>not found</h1>"))
	})
	return mux
}

func TestKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index.html"},
		{"/jobs", "jobs/index.html"},
		{"/jobs/courier", "jobs/courier/index.html"},
		{"/categories/delivery/", "categories/delivery/index.html"},
		{"/sitemap.xml", "sitemap.xml"},
		{"/blog/rss.xml", "blog/rss.xml"},
		{"/static/site.css", "static/site.css"},
		{NotFoundPath, "404.html"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.path))
		})
	}
}

func TestPaths(t *testing.T) {
	site := types.Site{BaseURL: "https://studentjobsrotterdam.nl/"}
	jobs := []types.JobRecord{{RawJob: types.RawJob{Slug: "courier", DatePosted: "2026-10-01"}}}

	paths := Paths(site, nil, jobs)
	assert.Equal(t, "/", paths[0])
	assert.Contains(t, paths, "/jobs")
	assert.Contains(t, paths, "/categories/delivery")
	assert.Contains(t, paths, "/jobs/courier")
	assert.Contains(t, paths, "/robots.txt")
	assert.Equal(t, NotFoundPath, paths[len(paths)-1])
}

func TestRun_DirSink(t *testing.T) {
	root := t.TempDir()
	exp := New(testHandler(), DirSink{Root: root}, zap.NewNop())

	sum, err := exp.Run(context.Background(), []string{"/", "/jobs/courier", "/sitemap.xml", NotFoundPath})
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Files)
	assert.Positive(t, sum.Bytes)

	data, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>home</h1>", string(data))

	data, err = os.ReadFile(filepath.Join(root, "jobs", "courier", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>courier</h1>", string(data))

	data, err = os.ReadFile(filepath.Join(root, "404.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>not found</h1>", string(data))
}

func TestRun_UnexpectedStatus(t *testing.T) {
	exp := New(testHandler(), DirSink{Root: t.TempDir()}, nil)

	_, err := exp.Run(context.Background(), []string{"/missing"})
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "render", exportErr.Op)
	assert.Equal(t, "/missing", exportErr.Path)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testHandler(), DirSink{Root: t.TempDir()}, nil).Run(ctx, []string{"/"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_S3Sink(t *testing.T) {
	client := &fakeS3{}
	exp := New(testHandler(), NewS3SinkWithClient(client, "site-bucket", "/preview/"), nil)

	_, err := exp.Run(context.Background(), []string{"/", "/sitemap.xml"})
	require.NoError(t, err)
	assert.Equal(t, "<h1>home</h1>", client.objects["site-bucket/preview/index.html"])
	assert.Equal(t, "application/xml; charset=utf-8", client.types["site-bucket/preview/sitemap.xml"])
}

func TestS3Sink_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "missing bucket", err: &mockAPIError{code: "NoSuchBucket"}, want: "bucket does not exist"},
		{name: "access denied", err: &mockAPIError{code: "AccessDenied"}, want: "access denied"},
		{name: "bad credentials", err: &mockAPIError{code: "InvalidAccessKeyId"}, want: "invalid credentials"},
		{name: "other code", err: &mockAPIError{code: "SlowDown"}, want: "S3 error SlowDown"},
		{name: "transport", err: errors.New("dial tcp: refused"), want: "upload failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewS3SinkWithClient(&fakeS3{err: tt.err}, "b", "")
			err := sink.Put(context.Background(), File{Key: "index.html"})

			var exportErr *Error
			require.ErrorAs(t, err, &exportErr)
			assert.Equal(t, "s3://b/index.html", exportErr.Path)
			assert.Contains(t, err.Error(), tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	assert.ErrorContains(t, err, "bucket name is required")
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		dest       string
		wantBucket string
		wantPrefix string
		wantOK     bool
	}{
		{"s3://site", "site", "", true},
		{"s3://site/preview/", "site", "preview", true},
		{"s3://site/a/b", "site", "a/b", true},
		{"./public", "", "", false},
		{"/var/www", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			bucket, prefix, ok := ParseDestination(tt.dest)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}

func TestRun_FullSite(t *testing.T) {
	jobs, err := catalog.Load()
	require.NoError(t, err)
	posts, err := blog.Load()
	require.NoError(t, err)

	cfg := &config.Config{
		Site:      types.Site{Name: "Student Jobs Rotterdam", BaseURL: "https://studentjobsrotterdam.nl", Locale: "en_NL"},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
	srv, err := server.New(cfg, server.Deps{
		Catalog: jobs,
		Posts:   posts,
		Leads:   leads.NewService(nil, nil, time.Second),
	}, nil)
	require.NoError(t, err)

	root := t.TempDir()
	paths := Paths(cfg.Site, posts.Posts(), jobs.Jobs())
	sum, err := New(srv.Handler(), DirSink{Root: root}, nil).Run(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, len(paths), sum.Files)

	for _, key := range []string{"index.html", "jobs/index.html", "robots.txt", "sitemap.xml", "blog/rss.xml", "static/site.css", "404.html"} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(key)))
		assert.NoError(t, err, fmt.Sprintf("missing %s", key))
	}
	for _, j := range jobs.Jobs() {
		_, err := os.Stat(filepath.Join(root, "jobs", j.Slug, "index.html"))
		assert.NoError(t, err, j.Slug)
	}
}
