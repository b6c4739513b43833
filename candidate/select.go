package candidate

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/internal/bitmap"
	"github.com/hupe1980/vecfilter/internal/conv"
	"github.com/hupe1980/vecfilter/model"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidPagination is returned for a negative limit or offset.
var ErrInvalidPagination = errors.New("candidate: invalid pagination")

// Select returns the records that pass the allow-list and both predicates,
// in input order.
//
// Both predicate trees are validated before any record is visited, so an
// empty combinator or an unknown operator fails instead of matching nothing.
// Pagination is applied to the surviving sequence: offset first, then limit.
// The context is checked between chunks, never inside a predicate.
func Select(ctx context.Context, records []model.Record, optFns ...Option) ([]model.Record, error) {
	o := options{minChunk: DefaultMinChunk}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.limit < 0 || o.offset < 0 {
		return nil, fmt.Errorf("%w: limit=%d offset=%d", ErrInvalidPagination, o.limit, o.offset)
	}

	if o.where != nil {
		if err := filter.Validate(o.where); err != nil {
			return nil, err
		}
	}
	if o.whereDocument != nil {
		if err := filter.ValidateDocument(o.whereDocument); err != nil {
			return nil, err
		}
	}

	var allow map[string]struct{}
	if len(o.ids) > 0 {
		allow = make(map[string]struct{}, len(o.ids))
		for _, id := range o.ids {
			allow[id] = struct{}{}
		}
	}

	m := matcher{where: o.where, whereDocument: o.whereDocument, allow: allow}

	// Parallel chunks record survivors as uint32 row positions.
	if o.parallelism > 1 && len(records) >= 2*o.minChunk && conv.RowCount(len(records)) == nil {
		return selectParallel(ctx, records, m, o)
	}
	return selectSequential(ctx, records, m, o)
}

// SelectIDs is Select projected onto record ids.
func SelectIDs(ctx context.Context, records []model.Record, optFns ...Option) ([]string, error) {
	out, err := Select(ctx, records, optFns...)
	if err != nil {
		return nil, err
	}
	return model.IDs(out), nil
}

type matcher struct {
	where         filter.Where
	whereDocument filter.WhereDocument
	allow         map[string]struct{}
}

func (m matcher) match(rec *model.Record) bool {
	if m.allow != nil {
		if _, ok := m.allow[rec.ID]; !ok {
			return false
		}
	}
	// Cheap metadata test first; document regexes are the expensive side.
	if m.where != nil && !m.where.Match(rec.Metadata) {
		return false
	}
	if m.whereDocument != nil && !m.whereDocument.Match(rec.Document) {
		return false
	}
	return true
}

func selectSequential(ctx context.Context, records []model.Record, m matcher, o options) ([]model.Record, error) {
	out := make([]model.Record, 0)
	skipped := 0
	for i := range records {
		if i%o.minChunk == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if !m.match(&records[i]) {
			continue
		}
		if skipped < o.offset {
			skipped++
			continue
		}
		out = append(out, records[i])
		if o.limit > 0 && len(out) == o.limit {
			break
		}
	}
	return out, nil
}

func selectParallel(ctx context.Context, records []model.Record, m matcher, o options) ([]model.Record, error) {
	chunk := (len(records) + o.parallelism - 1) / o.parallelism
	if chunk < o.minChunk {
		chunk = o.minChunk
	}
	numChunks := (len(records) + chunk - 1) / chunk

	parts := make([]*bitmap.Rows, numChunks)
	defer func() {
		for _, p := range parts {
			bitmap.Put(p)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for c := 0; c < numChunks; c++ {
		start := c * chunk
		end := min(start+chunk, len(records))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows := bitmap.Get()
			for i := start; i < end; i++ {
				if m.match(&records[i]) {
					rows.Add(uint32(i))
				}
			}
			parts[c] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	survivors := bitmap.New()
	for _, p := range parts {
		if p != nil {
			survivors.Or(p)
		}
	}

	limit := o.limit
	if limit == 0 {
		limit = -1
	}
	positions := survivors.Window(o.offset, limit)
	out := make([]model.Record, len(positions))
	for i, pos := range positions {
		out[i] = records[pos]
	}
	return out, nil
}
