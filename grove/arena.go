package grove

import "golang.org/x/exp/constraints"

const (
	arenaPageBits = 7
	arenaPageSize = 1 << arenaPageBits
	arenaPageMask = arenaPageSize - 1
)

// arena is a grow-only node pool addressed by Ref. Slot 0 of the first
// page is reserved so NilRef never aliases a live node. Pages are fixed
// length and never reallocated, so a *node obtained from at stays valid
// across later allocations; split relies on this.
//
// Each root owns one arena and is written by at most one worker, so the
// arena needs no locking. Nodes are never freed individually; teardown
// is dropping the whole arena.
type arena[K constraints.Signed] struct {
	pages [][]node[K]
	next  Ref
	limit int // max live nodes, 0 means unlimited
}

func newArena[K constraints.Signed](limit int) arena[K] {
	return arena[K]{next: 1, limit: limit}
}

// alloc returns a fresh empty-leaf node. It fails only when a node
// limit was configured and is exhausted; the failure is final for the
// operation that needed the node, never retried.
func (a *arena[K]) alloc() (Ref, error) {
	if a.limit > 0 && a.len() >= a.limit {
		return NilRef, ErrNodesExhausted
	}
	r := a.next
	if int(r>>arenaPageBits) == len(a.pages) {
		a.pages = append(a.pages, make([]node[K], arenaPageSize))
	}
	a.next++
	n := a.at(r)
	n.reset()
	return r, nil
}

func (a *arena[K]) at(r Ref) *node[K] {
	return &a.pages[r>>arenaPageBits][r&arenaPageMask]
}

// len is the count of live nodes.
func (a *arena[K]) len() int {
	return int(a.next) - 1
}
