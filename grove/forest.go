package grove

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"github.com/forestrie/go-grove/bloom"
)

// Options collects the construction-time configuration of a Forest.
// The root count fixes the degree of write partitioning for the
// forest's lifetime; it is deliberately decoupled from the hardware
// parallelism actually available when a batch runs.
type Options struct {
	// Roots is the number of independent trees. Defaults to
	// runtime.GOMAXPROCS(0).
	Roots int

	// NodeLimit caps the number of nodes each root may allocate.
	// 0 means unlimited.
	NodeLimit int

	// BloomKeys, when nonzero, sizes a per-root membership pre-filter
	// for the expected total key count. Contains uses the filters to
	// skip roots that definitely do not hold a key.
	BloomKeys uint64
}

// Option is a generic option type used by Forest constructors.
type Option func(any)

func WithRoots(roots int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Roots = roots
		}
	}
}

func WithNodeLimit(limit int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.NodeLimit = limit
		}
	}
}

func WithBloom(expectedKeys uint64) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.BloomKeys = expectedKeys
		}
	}
}

// root is one shard of the forest: an independent B-tree and the arena
// backing its nodes.
type root[K constraints.Signed] struct {
	ar  arena[K]
	top Ref
}

// Forest is a fixed-size array of independent B-trees sharing nothing
// but the key domain. There is no global ordering across roots;
// membership is an OR-reduction over them. See doc.go for the
// concurrency contract.
type Forest[K constraints.Signed] struct {
	roots   []root[K]
	filters []*bloom.Filter
	rotor   atomic.Uint64
}

// New allocates a forest of empty single-node trees, immediately usable
// by Insert, InsertBulk and Contains.
func New[K constraints.Signed](opts ...Option) (*Forest[K], error) {
	o := Options{Roots: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Roots < 1 {
		return nil, ErrRootCount
	}

	f := &Forest[K]{roots: make([]root[K], o.Roots)}
	for i := range f.roots {
		r := &f.roots[i]
		r.ar = newArena[K](o.NodeLimit)
		top, err := r.ar.alloc()
		if err != nil {
			return nil, err
		}
		r.top = top
	}

	if o.BloomKeys > 0 {
		perRoot := o.BloomKeys/uint64(o.Roots) + 1
		f.filters = make([]*bloom.Filter, o.Roots)
		for i := range f.filters {
			flt, err := bloom.NewFilter(perRoot, bloom.DefaultBitsPerElement, bloom.DefaultK)
			if err != nil {
				return nil, err
			}
			f.filters[i] = flt
		}
	}
	return f, nil
}

// Roots returns the partition width fixed at construction.
func (f *Forest[K]) Roots() int {
	return len(f.roots)
}

// Insert places x in the next root in rotation. The rotation counter is
// atomic: a burst of up to Roots() simultaneous callers draws
// consecutive tickets and lands on distinct roots, staying within the
// one-writer-per-root contract. A sustained concurrent stream can lap
// the rotation onto a busy root; use InsertBulk for those. Inserting a
// present key is a successful no-op.
func (f *Forest[K]) Insert(x K) error {
	if x == emptySlot[K]() {
		return ErrReservedKey
	}
	ri := int((f.rotor.Add(1) - 1) % uint64(len(f.roots)))
	return f.insertInRoot(ri, x)
}

// RootInsert inserts x into the identified root, bypassing rotation.
// Callers own the scheduling obligation: one writer per root at a time.
func (f *Forest[K]) RootInsert(ri int, x K) error {
	if ri < 0 || ri >= len(f.roots) {
		return ErrRootRange
	}
	if x == emptySlot[K]() {
		return ErrReservedKey
	}
	return f.insertInRoot(ri, x)
}

func (f *Forest[K]) insertInRoot(ri int, x K) error {
	if err := f.roots[ri].insert(x); err != nil {
		return err
	}
	if f.filters != nil {
		f.filters[ri].Insert(keyBits(x))
	}
	return nil
}

// Contains sweeps every root and reports whether any of them holds x.
// With a bloom pre-filter configured, roots that definitely do not hold
// x are skipped without touching their nodes.
func (f *Forest[K]) Contains(x K) bool {
	for i := range f.roots {
		if f.filters != nil && !f.filters[i].MaybeContains(keyBits(x)) {
			continue
		}
		if f.roots[i].contains(x) {
			return true
		}
	}
	return false
}

// RootContains answers membership for a single root. ri must be in
// range, as with a slice index.
func (f *Forest[K]) RootContains(ri int, x K) bool {
	return f.roots[ri].contains(x)
}

// RootStats describes one root for inspection and testing.
type RootStats struct {
	Nodes  int
	Keys   int
	Height int // node levels from root to leaf; 1 for a bare root
}

// Stats walks every root and reports its size and shape.
func (f *Forest[K]) Stats() []RootStats {
	stats := make([]RootStats, len(f.roots))
	for i := range f.roots {
		r := &f.roots[i]
		stats[i] = RootStats{
			Nodes:  r.ar.len(),
			Keys:   r.countKeys(r.top),
			Height: r.height(),
		}
	}
	return stats
}

func (r *root[K]) countKeys(ref Ref) int {
	n := r.ar.at(ref)
	nk := n.keyCount()
	if n.isLeaf() {
		return nk
	}
	total := nk
	for i := 0; i <= nk; i++ {
		total += r.countKeys(n.children[i])
	}
	return total
}

func (r *root[K]) height() int {
	h := 0
	for ref := r.top; ref != NilRef; ref = r.ar.at(ref).children[0] {
		h++
	}
	return h
}
