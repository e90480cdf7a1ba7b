package grove

import "golang.org/x/exp/constraints"

// node is the fixed-capacity unit the descent algorithms operate on.
// See doc.go for the slot layout and its invariants.
type node[K constraints.Signed] struct {
	keys     [slotCount]K
	children [childCount]Ref
}

// reset puts the node in the empty-leaf state: every key slot holds the
// empty marker and every child link is nil.
func (n *node[K]) reset() {
	empty := emptySlot[K]()
	for i := range n.keys {
		n.keys[i] = empty
	}
	for i := range n.children {
		n.children[i] = NilRef
	}
}

// isLeaf relies on the balance invariant: if the first child link is
// nil, every logically-present child link is nil.
func (n *node[K]) isLeaf() bool {
	return n.children[0] == NilRef
}

// keyCount returns the length of the occupied prefix.
func (n *node[K]) keyCount() int {
	empty := emptySlot[K]()
	for i := 0; i < MaxKeys; i++ {
		if n.keys[i] == empty {
			return i
		}
	}
	return MaxKeys
}

// insertKey places key, and the child link that follows it, into a node
// known not to be full. The tail of the occupied prefix shifts one slot
// right; each moved key drags the child link to its right along with
// it. Slots past the prefix just move empty markers over empty markers,
// so the shift needs no occupancy test. right is the new right sibling
// produced by a split, or NilRef for a plain leaf insertion.
//
// The precondition is assert-class: a full node here is a bug in the
// pre-emptive split discipline, not a runtime condition.
func (n *node[K]) insertKey(key K, right Ref) {
	if laneAllFull(&n.keys) {
		panic("grove: insertKey called on a full node")
	}
	at := laneRouteIndex(&n.keys, key)
	for i := MaxKeys - 1; i > at; i-- {
		n.keys[i] = n.keys[i-1]
		n.children[i+1] = n.children[i]
	}
	n.keys[at] = key
	n.children[at+1] = right
}
