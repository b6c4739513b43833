package source

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when an object does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Source opens named objects for sequential reading.
type Source interface {
	// Open opens an object. The caller closes the returned reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
