package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
)

// Resolver returns the Source serving a bucket.
type Resolver func(ctx context.Context, bucket string) (Source, error)

// Router opens URIs by dispatching on their scheme.
//
// Paths without a scheme and file:// URIs are read from the local file
// system. Other schemes are served by registered resolvers, which receive the
// URI host as bucket name; the URI path (without its leading slash) is the
// object name.
type Router struct {
	mu        sync.RWMutex
	local     Source
	resolvers map[string]Resolver
}

// NewRouter creates a Router that handles local paths only.
func NewRouter() *Router {
	return &Router{
		local:     NewLocal(""),
		resolvers: make(map[string]Resolver),
	}
}

// Handle registers the resolver for a scheme such as "s3".
func (r *Router) Handle(scheme string, res Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[strings.ToLower(scheme)] = res
}

// Open opens the object named by uri.
func (r *Router) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme, bucket, name, err := Parse(uri)
	if err != nil {
		return nil, err
	}
	if scheme == "" || scheme == "file" {
		return r.local.Open(ctx, name)
	}

	r.mu.RLock()
	res, ok := r.resolvers[scheme]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("source: unsupported scheme %q", scheme)
	}

	src, err := res(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("source: %s://%s: %w", scheme, bucket, err)
	}
	return src.Open(ctx, name)
}

// Parse splits a source URI into scheme, bucket and object name.
//
// A plain path yields an empty scheme and bucket.
func Parse(uri string) (scheme, bucket, name string, err error) {
	if !strings.Contains(uri, "://") {
		return "", "", uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", "", "", fmt.Errorf("source: parse %q: %w", uri, err)
	}
	scheme = strings.ToLower(u.Scheme)

	if scheme == "file" {
		return scheme, "", u.Host + u.Path, nil
	}

	name = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || name == "" {
		return "", "", "", fmt.Errorf("source: %q must look like %s://bucket/key", uri, scheme)
	}
	return scheme, u.Host, name, nil
}
