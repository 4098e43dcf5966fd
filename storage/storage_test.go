package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mtfield/storage"
)

// fakeS3 is an in-memory S3API.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.puts++
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &s3types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, s3types.Object{Key: aws.String(k)})
		}
	}
	return out, nil
}

// backends returns a file and a fake-S3 backend for shared contract tests.
func backends(t *testing.T) map[string]storage.Backend {
	t.Helper()
	fb, err := storage.NewFileBackend(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	sb, err := storage.NewS3BackendWithClient(newFakeS3(), storage.S3Config{Bucket: "images", Prefix: "runs/", SpoolDir: t.TempDir()})
	require.NoError(t, err)

	return map[string]storage.Backend{"file": fb, "s3": sb}
}

// TestBackend_Contract runs the shared visibility rules on each backend.
func TestBackend_Contract(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer b.Close()

			require.NoError(t, b.Write(ctx, "a/ids.csv", []byte("SEQN\n1\n")))
			got, err := b.Read(ctx, "a/ids.csv")
			require.NoError(t, err)
			assert.Equal(t, "SEQN\n1\n", string(got))

			p, err := b.Create(ctx, "a/images.npy")
			require.NoError(t, err)
			_, err = p.Write([]byte("part1"))
			require.NoError(t, err)
			ok, err := b.Exists(ctx, "a/images.npy")
			require.NoError(t, err)
			assert.False(t, ok, "pending object must be invisible")
			_, err = p.Write([]byte("part2"))
			require.NoError(t, err)
			require.NoError(t, p.Commit(ctx))
			assert.ErrorIs(t, p.Commit(ctx), storage.ErrFinished)

			got, err = b.Read(ctx, "a/images.npy")
			require.NoError(t, err)
			assert.Equal(t, "part1part2", string(got))

			keys, err := b.List(ctx, "a/")
			require.NoError(t, err)
			assert.Equal(t, []string{"a/ids.csv", "a/images.npy"}, keys)

			p, err = b.Create(ctx, "a/aborted.npy")
			require.NoError(t, err)
			_, _ = p.Write([]byte("junk"))
			require.NoError(t, p.Abort())
			ok, err = b.Exists(ctx, "a/aborted.npy")
			require.NoError(t, err)
			assert.False(t, ok)
			keys, _ = b.List(ctx, "")
			assert.False(t, slices.Contains(keys, "a/aborted.npy"))

			require.NoError(t, b.Delete(ctx, "a/ids.csv"))
			_, err = b.Read(ctx, "a/ids.csv")
			assert.ErrorIs(t, err, storage.ErrNotFound)

			_, err = b.Create(ctx, "")
			assert.ErrorIs(t, err, storage.ErrInvalidKey)
		})
	}
}

// TestFileBackend_Traversal rejects keys escaping the base directory.
func TestFileBackend_Traversal(t *testing.T) {
	fb, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"../escape.npy", "a/../../escape", "."} {
		err = fb.Write(context.Background(), key, []byte("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

// TestFileBackend_NoTempLeftover leaves only the committed file.
func TestFileBackend_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	fb, err := storage.NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, fb.Write(context.Background(), "x.npy", []byte("data")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x.npy", entries[0].Name())
}

// TestS3Backend_Prefix stores full keys and lists relative ones.
func TestS3Backend_Prefix(t *testing.T) {
	fake := newFakeS3()
	sb, err := storage.NewS3BackendWithClient(fake, storage.S3Config{Bucket: "b", Prefix: "mtf/", SpoolDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, sb.Write(context.Background(), "x.npy", []byte("1")))

	assert.Contains(t, fake.objects, "mtf/x.npy")
	assert.Equal(t, 1, fake.puts)

	_, err = storage.NewS3BackendWithClient(fake, storage.S3Config{})
	assert.Error(t, err)
}

// TestParseLocation covers s3, file URLs and bare paths.
func TestParseLocation(t *testing.T) {
	l, err := storage.ParseLocation("s3://bucket/runs/D/images.npy")
	require.NoError(t, err)
	assert.Equal(t, storage.Location{Scheme: "s3", Bucket: "bucket", Key: "runs/D/images.npy"}, l)
	assert.Equal(t, "s3://bucket/runs/D/images.npy", l.String())

	l, err = storage.ParseLocation("file:///data/mtf_images_D.npy")
	require.NoError(t, err)
	assert.Equal(t, storage.Location{Scheme: "file", Key: "/data/mtf_images_D.npy"}, l)

	l, err = storage.ParseLocation("data/out.npy")
	require.NoError(t, err)
	assert.Equal(t, "file", l.Scheme)

	for _, bad := range []string{"", "s3://", "s3://bucket", "s3:///key"} {
		_, err = storage.ParseLocation(bad)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, bad)
	}
}
