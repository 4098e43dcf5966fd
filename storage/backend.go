package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotFound indicates a key with no committed object.
	ErrNotFound = errors.New("storage: object not found")

	// ErrInvalidKey indicates an empty key or one escaping the backend root.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrFinished indicates Write, Commit or Abort on a finished object.
	ErrFinished = errors.New("storage: object already committed or aborted")
)

// Backend stores whole objects under slash-separated keys.
type Backend interface {
	// Create opens a pending object for streaming writes.
	Create(ctx context.Context, key string) (Pending, error)

	// Write stores data under key atomically.
	Write(ctx context.Context, key string, data []byte) error

	// Read returns the object under key or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether key holds a committed object.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Pending is an object being written. Exactly one of Commit or Abort
// finishes it; Abort after a failed Commit cleans up.
type Pending interface {
	io.Writer
	Commit(ctx context.Context) error
	Abort() error
}

// writeAll stores data through Create/Commit.
func writeAll(ctx context.Context, b Backend, key string, data []byte) error {
	p, err := b.Create(ctx, key)
	if err != nil {
		return err
	}
	if _, err = p.Write(data); err != nil {
		_ = p.Abort()
		return err
	}
	if err = p.Commit(ctx); err != nil {
		_ = p.Abort()
		return err
	}

	return nil
}

// Location is a parsed destination.
type Location struct {
	Scheme string // "file" or "s3"
	Bucket string // s3 only
	Key    string // object key, or file path for "file"
}

// String renders the location back as a destination string.
func (l Location) String() string {
	if l.Scheme == "s3" {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.Key
}

// ParseLocation accepts "s3://bucket/key", "file:///path" or a bare path.
func ParseLocation(dest string) (Location, error) {
	switch {
	case strings.HasPrefix(dest, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(dest, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("storage: %q: want s3://bucket/key: %w", dest, ErrInvalidKey)
		}
		return Location{Scheme: "s3", Bucket: bucket, Key: key}, nil
	case strings.HasPrefix(dest, "file://"):
		dest = strings.TrimPrefix(dest, "file://")
	}
	if dest == "" {
		return Location{}, fmt.Errorf("storage: empty destination: %w", ErrInvalidKey)
	}

	return Location{Scheme: "file", Key: dest}, nil
}
