package recordio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/bytedance/sonic"
	"github.com/hupe1980/vecfilter/metadata"
	"github.com/hupe1980/vecfilter/model"
	"github.com/hupe1980/vecfilter/source"
)

// ErrInvalidRecord is returned for a line that is not a valid record.
var ErrInvalidRecord = errors.New("recordio: invalid record")

var decoder = sonic.Config{UseNumber: true}.Froze()

// line is the wire form of one record.
type line struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Document *string        `json:"document,omitempty"`
}

type options struct {
	schema     metadata.Schema
	jsonSchema *metadata.JSONSchema
}

// Option configures a Reader.
type Option func(*options)

// WithSchema rejects records whose metadata contradicts s.
func WithSchema(s metadata.Schema) Option {
	return func(o *options) {
		o.schema = s
	}
}

// WithJSONSchema rejects records whose metadata does not validate against s.
func WithJSONSchema(s *metadata.JSONSchema) Option {
	return func(o *options) {
		o.jsonSchema = s
	}
}

// Reader decodes records from a JSON Lines stream.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
	under  io.Closer
	opts   options
	lineNo int
	seen   map[string]int
}

// NewReader decodes uncompressed JSON Lines from r.
func NewReader(r io.Reader, optFns ...Option) *Reader {
	rd, _ := newReader(r, nil, CompressionNone, optFns)
	return rd
}

// NewCompressedReader decodes JSON Lines from r, decompressing with c.
func NewCompressedReader(r io.Reader, c Compression, optFns ...Option) (*Reader, error) {
	return newReader(r, nil, c, optFns)
}

// Open opens name from src and decodes it, choosing the compression from
// the name. Close releases the underlying object.
func Open(ctx context.Context, src source.Source, name string, optFns ...Option) (*Reader, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	rd, err := newReader(rc, rc, CompressionFromName(name), optFns)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return rd, nil
}

// OpenURI is Open for a URI resolved by router.
func OpenURI(ctx context.Context, router *source.Router, uri string, optFns ...Option) (*Reader, error) {
	rc, err := router.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	_, _, name, _ := source.Parse(uri)
	rd, err := newReader(rc, rc, CompressionFromName(name), optFns)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return rd, nil
}

func newReader(r io.Reader, under io.Closer, c Compression, optFns []Option) (*Reader, error) {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	dr, err := decompress(r, c)
	if err != nil {
		return nil, err
	}

	return &Reader{
		br:     bufio.NewReaderSize(dr, 64*1024),
		closer: dr,
		under:  under,
		opts:   o,
		seen:   make(map[string]int),
	}, nil
}

// Next returns the next record, or io.EOF after the last one.
// Blank lines are skipped.
func (r *Reader) Next() (model.Record, error) {
	for {
		raw, err := r.br.ReadBytes('\n')
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				return model.Record{}, io.EOF
			}
			return model.Record{}, fmt.Errorf("recordio: read: %w", err)
		}
		r.lineNo++

		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			if err != nil {
				return model.Record{}, io.EOF
			}
			continue
		}
		return r.decode(raw)
	}
}

func (r *Reader) decode(raw []byte) (model.Record, error) {
	var l line
	if err := decoder.Unmarshal(raw, &l); err != nil {
		return model.Record{}, r.invalid("%v", err)
	}
	if l.ID == "" {
		return model.Record{}, r.invalid("missing id")
	}
	if prev, ok := r.seen[l.ID]; ok {
		return model.Record{}, r.invalid("duplicate id %q, first seen on line %d", l.ID, prev)
	}
	r.seen[l.ID] = r.lineNo

	doc, err := metadata.DocumentFromAny(l.Metadata)
	if err != nil {
		return model.Record{}, r.invalid("%v", err)
	}
	if err := r.opts.schema.Validate(doc); err != nil {
		return model.Record{}, r.invalid("%v", err)
	}
	if err := r.opts.jsonSchema.Validate(doc); err != nil {
		return model.Record{}, r.invalid("%v", err)
	}

	return model.Record{ID: l.ID, Metadata: doc, Document: l.Document}, nil
}

func (r *Reader) invalid(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidRecord, r.lineNo, fmt.Sprintf(format, args...))
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error.
func (r *Reader) All() iter.Seq2[model.Record, error] {
	return func(yield func(model.Record, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the decoder and the underlying object, if the Reader owns it.
func (r *Reader) Close() error {
	err := r.closer.Close()
	if r.under != nil {
		err = errors.Join(err, r.under.Close())
	}
	return err
}

// ReadAll decodes every record from r.
func ReadAll(r *Reader) ([]model.Record, error) {
	var out []model.Record
	for rec, err := range r.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
