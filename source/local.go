package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Local implements Source using the local file system.
type Local struct {
	root string
}

// NewLocal creates a Local source rooted at the given directory.
// An empty root resolves names against the working directory, and absolute
// names are used as-is.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Open opens a file for reading.
func (s *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := name
	if s.root != "" && !filepath.IsAbs(name) {
		path = filepath.Join(s.root, name)
	}
	return os.Open(path)
}
