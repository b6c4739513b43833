package bitmap

import (
	"slices"
	"testing"
)

func fill(r *Rows, positions ...uint32) {
	for _, p := range positions {
		r.Add(p)
	}
}

func TestRows_Basic(t *testing.T) {
	r := New()

	r.Add(100)
	r.Add(100)
	r.Add(3)

	if c := r.Cardinality(); c != 2 {
		t.Errorf("Cardinality = %d, want 2", c)
	}
	if got := slices.Collect(r.All()); !slices.Equal(got, []int{3, 100}) {
		t.Errorf("All = %v, want [3 100]", got)
	}
}

func TestRows_AscendingAfterOutOfOrderMerge(t *testing.T) {
	a := New()
	b := New()
	fill(a, 40, 2, 17)
	fill(b, 30, 1)

	b.Or(a)

	got := slices.Collect(b.All())
	want := []int{1, 2, 17, 30, 40}
	if !slices.Equal(got, want) {
		t.Errorf("All = %v, want %v", got, want)
	}

	var visited []int
	for pos := range b.All() {
		visited = append(visited, pos)
		if len(visited) == 2 {
			break
		}
	}
	if !slices.Equal(visited, []int{1, 2}) {
		t.Errorf("early break visited %v, want [1 2]", visited)
	}
}

func TestRows_Window(t *testing.T) {
	r := New()
	fill(r, 19, 10, 11, 12, 13, 14, 15, 16, 17, 18)

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"all", 0, -1, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}},
		{"limit", 0, 3, []int{10, 11, 12}},
		{"offset", 8, -1, []int{18, 19}},
		{"offset and limit", 2, 2, []int{12, 13}},
		{"offset past end", 10, 5, nil},
		{"zero limit", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Window(tt.offset, tt.limit)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Window(%d, %d) = %v, want %v", tt.offset, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRows_Pool(t *testing.T) {
	r := Get()
	fill(r, 0, 1, 2, 64, 99)
	Put(r)

	again := Get()
	defer Put(again)
	if c := again.Cardinality(); c != 0 {
		t.Errorf("pooled set has %d positions, want 0", c)
	}

	Put(nil)
}
