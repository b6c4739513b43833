package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/vecfilter/source"
)

// Client is the subset of the S3 API used by Source.
// *s3.Client satisfies it.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source implements source.Source for S3.
type Source struct {
	client Client
	bucket string
	prefix string
}

// New creates a new S3 source.
// rootPrefix is prepended to all keys (e.g. "snapshots/").
func New(client Client, bucket, rootPrefix string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

// NewFromConfig creates a Source using the default AWS credential chain.
func NewFromConfig(ctx context.Context, bucket, rootPrefix string, optFns ...func(*config.LoadOptions) error) (*Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket, rootPrefix), nil
}

// Resolver returns a source.Resolver serving any bucket through client.
func Resolver(client Client) source.Resolver {
	return func(_ context.Context, bucket string) (source.Source, error) {
		return New(client, bucket, ""), nil
	}
}

// DefaultResolver returns a source.Resolver that loads the default AWS
// configuration on first use.
func DefaultResolver(optFns ...func(*config.LoadOptions) error) source.Resolver {
	var (
		mu     sync.Mutex
		client Client
	)
	return func(ctx context.Context, bucket string) (source.Source, error) {
		mu.Lock()
		defer mu.Unlock()
		if client == nil {
			cfg, err := config.LoadDefaultConfig(ctx, optFns...)
			if err != nil {
				return nil, fmt.Errorf("load aws config: %w", err)
			}
			client = s3.NewFromConfig(cfg)
		}
		return New(client, bucket, ""), nil
	}
}

func (s *Source) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an object for reading.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %w", source.ErrNotFound, err)
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %w", source.ErrNotFound, err)
		}
		return nil, err
	}
	return out.Body, nil
}
