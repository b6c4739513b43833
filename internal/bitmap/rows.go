package bitmap

import (
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Rows is a set of record positions.
//
// Rows is not safe for concurrent mutation. Parallel producers build one set
// each and merge them with Or.
type Rows struct {
	rb *roaring.Bitmap
}

var rowsPool = sync.Pool{
	New: func() any {
		return &Rows{rb: roaring.New()}
	},
}

// New creates an empty set.
func New() *Rows {
	return &Rows{rb: roaring.New()}
}

// Get gets an empty set from the pool. Call Put when done.
func Get() *Rows {
	r := rowsPool.Get().(*Rows)
	r.rb.Clear()
	return r
}

// Put returns a set to the pool.
func Put(r *Rows) {
	if r == nil {
		return
	}
	// Clear before returning to pool to release container memory
	r.rb.Clear()
	rowsPool.Put(r)
}

// Add adds a position.
func (r *Rows) Add(pos uint32) {
	r.rb.Add(pos)
}

// Cardinality returns the number of positions in the set.
func (r *Rows) Cardinality() int {
	return int(r.rb.GetCardinality())
}

// Or merges other into r.
func (r *Rows) Or(other *Rows) {
	r.rb.Or(other.rb)
}

// All returns an ascending iterator over the set.
func (r *Rows) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := r.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Window returns up to limit positions in ascending order after skipping the
// first offset. A negative limit means no limit.
func (r *Rows) Window(offset, limit int) []int {
	n := r.Cardinality() - offset
	if n <= 0 || limit == 0 {
		return nil
	}
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]int, 0, n)
	skipped := 0
	for pos := range r.All() {
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, pos)
		if len(out) == n {
			break
		}
	}
	return out
}
