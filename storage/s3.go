package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures the S3 backend.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // S3-compatible services (MinIO, etc.)
	// AccessKeyID / SecretAccessKey set static credentials. Prefer IAM
	// roles or AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY in the environment.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`         // prepended to every key
	UsePathStyle    bool   `yaml:"use_path_style"` // path-style addressing
	MaxAttempts     int    `yaml:"max_attempts"`   // SDK retry attempts; 0 keeps the SDK default
	SpoolDir        string `yaml:"spool_dir"`      // temp dir for pending objects; "" = os.TempDir
}

// S3API is the subset of *s3.Client the backend calls.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Backend stores objects in one bucket.
type S3Backend struct {
	client S3API
	cfg    S3Config
}

var _ Backend = (*S3Backend)(nil)

// NewS3Backend loads the default AWS configuration chain and builds a
// client for cfg.
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	if cfg.MaxAttempts > 0 {
		opts = append(opts, config.WithRetryMaxAttempts(cfg.MaxAttempts))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return NewS3BackendWithClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg)
}

// NewS3BackendWithClient uses an existing client (or a test double).
func NewS3BackendWithClient(client S3API, cfg S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}

	return &S3Backend{client: client, cfg: cfg}, nil
}

func (s *S3Backend) fullKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	return s.cfg.Prefix + key, nil
}

// Create spools writes to a local temp file; Commit uploads it.
func (s *S3Backend) Create(_ context.Context, key string) (Pending, error) {
	full, err := s.fullKey(key)
	if err != nil {
		return nil, err
	}
	fh, err := os.CreateTemp(s.cfg.SpoolDir, "mtf-s3-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("storage: spool: %w", err)
	}

	return &s3Pending{s: s, key: full, fh: fh}, nil
}

// Write uploads data in one PutObject.
func (s *S3Backend) Write(ctx context.Context, key string, data []byte) error {
	return writeAll(ctx, s, key, data)
}

// Read downloads the object or returns ErrNotFound.
func (s *S3Backend) Read(ctx context.Context, key string) ([]byte, error) {
	full, err := s.fullKey(key)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(full),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("storage: %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("storage: S3 get object: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: S3 read body: %w", err)
	}

	return data, nil
}

// Exists issues a HeadObject.
func (s *S3Backend) Exists(ctx context.Context, key string) (bool, error) {
	full, err := s.fullKey(key)
	if err != nil {
		return false, err
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(full),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: S3 head object: %w", err)
	}

	return true, nil
}

// Delete removes the object.
func (s *S3Backend) Delete(ctx context.Context, key string) error {
	full, err := s.fullKey(key)
	if err != nil {
		return err
	}
	if _, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(full),
	}); err != nil {
		return fmt.Errorf("storage: S3 delete object: %w", err)
	}

	return nil
}

// List pages through ListObjectsV2 and strips the configured prefix.
func (s *S3Backend) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(s.cfg.Prefix + prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: S3 list objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, strings.TrimPrefix(aws.ToString(obj.Key), s.cfg.Prefix))
		}
	}
	slices.Sort(keys)

	return keys, nil
}

// Close is a no-op.
func (s *S3Backend) Close() error { return nil }

// isNotFound matches NoSuchKey and the bare 404 HeadObject returns.
func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	return strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "StatusCode: 404")
}

type s3Pending struct {
	s    *S3Backend
	key  string
	fh   *os.File
	done bool
}

func (p *s3Pending) Write(b []byte) (int, error) {
	if p.done {
		return 0, ErrFinished
	}
	return p.fh.Write(b)
}

func (p *s3Pending) Commit(ctx context.Context) error {
	if p.done {
		return ErrFinished
	}
	size, err := p.fh.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err = p.fh.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err = p.s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.s.cfg.Bucket),
		Key:           aws.String(p.key),
		Body:          p.fh,
		ContentLength: aws.Int64(size),
	}); err != nil {
		return fmt.Errorf("storage: S3 put object: %w", err)
	}
	p.done = true
	p.cleanup()

	return nil
}

func (p *s3Pending) Abort() error {
	if p.done {
		return nil
	}
	p.done = true
	p.cleanup()

	return nil
}

func (p *s3Pending) cleanup() {
	_ = p.fh.Close()
	_ = os.Remove(p.fh.Name())
}
