package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const tmpSuffix = ".tmp"

// FileBackend stores objects as files under a base directory.
type FileBackend struct {
	baseDir string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates baseDir if needed and roots the backend there.
func NewFileBackend(baseDir string) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base directory: %w", err)
	}

	return &FileBackend{baseDir: filepath.Clean(abs)}, nil
}

// BaseDir returns the absolute root directory.
func (f *FileBackend) BaseDir() string { return f.baseDir }

// safePath resolves key inside baseDir, rejecting traversal.
func (f *FileBackend) safePath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	resolved := filepath.Clean(filepath.Join(f.baseDir, filepath.FromSlash(key)))
	if resolved == f.baseDir || !strings.HasPrefix(resolved, f.baseDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: %q: %w", key, ErrInvalidKey)
	}

	return resolved, nil
}

// Create opens a temp file next to the target; Commit renames it.
func (f *FileBackend) Create(_ context.Context, key string) (Pending, error) {
	path, err := f.safePath(key)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+tmpSuffix)
	fh, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	return &filePending{fh: fh, tmp: tmp, path: path}, nil
}

// Write stores data atomically.
func (f *FileBackend) Write(ctx context.Context, key string, data []byte) error {
	return writeAll(ctx, f, key, data)
}

// Read returns the file contents or ErrNotFound.
func (f *FileBackend) Read(_ context.Context, key string) ([]byte, error) {
	path, err := f.safePath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("storage: %q: %w", key, ErrNotFound)
	}

	return data, err
}

// Exists reports whether the file exists.
func (f *FileBackend) Exists(_ context.Context, key string) (bool, error) {
	path, err := f.safePath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return err == nil, err
}

// Delete removes the file if present.
func (f *FileBackend) Delete(_ context.Context, key string) error {
	path, err := f.safePath(key)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// List walks baseDir for committed files whose key starts with prefix.
// Pending temp files are never listed.
func (f *FileBackend) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(f.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(d.Name(), tmpSuffix) {
			return nil
		}
		rel, err := filepath.Rel(f.baseDir, path)
		if err != nil {
			return err
		}
		if key := filepath.ToSlash(rel); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	slices.Sort(keys)

	return keys, err
}

// Close is a no-op.
func (f *FileBackend) Close() error { return nil }

type filePending struct {
	fh   *os.File
	tmp  string
	path string
	done bool
}

func (p *filePending) Write(b []byte) (int, error) {
	if p.done {
		return 0, ErrFinished
	}
	return p.fh.Write(b)
}

func (p *filePending) Commit(_ context.Context) error {
	if p.done {
		return ErrFinished
	}
	if err := p.fh.Sync(); err != nil {
		return err
	}
	if err := p.fh.Close(); err != nil {
		return err
	}
	if err := os.Rename(p.tmp, p.path); err != nil {
		return err
	}
	p.done = true

	return nil
}

func (p *filePending) Abort() error {
	if p.done {
		return nil
	}
	p.done = true
	_ = p.fh.Close()
	if err := os.Remove(p.tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
