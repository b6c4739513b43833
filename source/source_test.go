package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.jsonl"), []byte("hello"), 0o600))

	ctx := context.Background()
	src := NewLocal(dir)

	rc, err := src.Open(ctx, "records.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "hello", readAll(t, rc))

	rc, err = NewLocal("/elsewhere").Open(ctx, filepath.Join(dir, "records.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "hello", readAll(t, rc))

	_, err = src.Open(ctx, "missing.jsonl")
	assert.True(t, errors.Is(err, ErrNotFound))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.Open(canceled, "records.jsonl")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	data := []byte("abc")
	m.Put("a", data)
	data[0] = 'x'

	rc, err := m.Open(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "abc", readAll(t, rc))

	_, err = m.Open(context.Background(), "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParse(t *testing.T) {
	tests := []struct {
		uri                  string
		scheme, bucket, name string
		wantErr              bool
	}{
		{uri: "records.jsonl", name: "records.jsonl"},
		{uri: "./data/records.jsonl.gz", name: "./data/records.jsonl.gz"},
		{uri: "file:///data/records.jsonl", scheme: "file", name: "/data/records.jsonl"},
		{uri: "s3://bucket/snapshots/r.jsonl", scheme: "s3", bucket: "bucket", name: "snapshots/r.jsonl"},
		{uri: "MINIO://b/k", scheme: "minio", bucket: "b", name: "k"},
		{uri: "s3://bucket", wantErr: true},
		{uri: "s3:///key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			scheme, bucket, name, err := Parse(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, scheme)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "local.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o600))

	mem := NewMemory()
	mem.Put("snapshots/r.jsonl", []byte("remote"))

	r := NewRouter()
	var gotBucket string
	r.Handle("mem", func(_ context.Context, bucket string) (Source, error) {
		gotBucket = bucket
		return mem, nil
	})
	r.Handle("broken", func(context.Context, string) (Source, error) {
		return nil, errors.New("no credentials")
	})

	rc, err := r.Open(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "local", readAll(t, rc))

	rc, err = r.Open(ctx, "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "local", readAll(t, rc))

	rc, err = r.Open(ctx, "mem://papers/snapshots/r.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "remote", readAll(t, rc))
	assert.Equal(t, "papers", gotBucket)

	_, err = r.Open(ctx, "mem://papers/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Open(ctx, "gs://bucket/key")
	assert.ErrorContains(t, err, "unsupported scheme")

	_, err = r.Open(ctx, "broken://bucket/key")
	assert.ErrorContains(t, err, "no credentials")
}
