package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// File is one rendered artifact, keyed by its slash-separated path.
type File struct {
	Key         string
	ContentType string
	Body        []byte
}

// Sink stores exported files.
type Sink interface {
	Put(ctx context.Context, f File) error
}

// DirSink writes files below a local directory.
type DirSink struct {
	Root string
}

// Put writes f, creating parent directories as needed.
func (d DirSink) Put(_ context.Context, f File) error {
	dst := filepath.Join(d.Root, filepath.FromSlash(f.Key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &Error{Op: "write", Path: f.Key, Message: "failed to create directory", Cause: err}
	}
	if err := os.WriteFile(dst, f.Body, 0o644); err != nil {
		return &Error{Op: "write", Path: f.Key, Message: "failed to write file", Cause: err}
	}
	return nil
}

// S3API is the subset of the S3 client used for uploads.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config locates the bucket of an S3 export. Empty credentials select the
// default AWS credential chain.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// S3Sink uploads files to a bucket, optionally below a key prefix.
type S3Sink struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Sink creates an S3Sink from cfg.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, &Error{Op: "configure", Path: "s3://", Message: "bucket name is required"}
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &Error{Op: "configure", Path: "s3://" + cfg.Bucket, Message: "failed to load AWS config", Cause: err}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3SinkWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SinkWithClient wraps an existing client.
func NewS3SinkWithClient(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Put uploads f with its content type.
func (s *S3Sink) Put(ctx context.Context, f File) error {
	key := f.Key
	if s.prefix != "" {
		key = path.Join(s.prefix, f.Key)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(f.Body),
		ContentLength: aws.Int64(int64(len(f.Body))),
		ContentType:   aws.String(f.ContentType),
	})
	if err != nil {
		return &Error{Op: "upload", Path: fmt.Sprintf("s3://%s/%s", s.bucket, key), Message: describeS3Error(err), Cause: err}
	}
	return nil
}

// ParseDestination splits "s3://bucket/prefix" into its parts. ok is false
// for anything else, which names a local directory.
func ParseDestination(dest string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(dest, "s3://")
	if !found {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	return bucket, strings.Trim(prefix, "/"), true
}
