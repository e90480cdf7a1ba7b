package grove

import "fmt"

// CheckInvariants walks every root and validates the structural
// invariants the public operations promise to preserve: strictly
// ascending contiguous key prefixes fenced by an empty guard slot,
// child links matching the occupied count, separator bounds between
// levels, and all leaves of a root at the same depth. It exists for
// tests and operational checks; the hot paths never call it.
func (f *Forest[K]) CheckInvariants() error {
	for i := range f.roots {
		if _, err := f.roots[i].checkNode(f.roots[i].top, nil, nil); err != nil {
			return fmt.Errorf("root %d: %w", i, err)
		}
	}
	return nil
}

// checkNode validates the subtree at ref and returns its leaf depth.
// lo and hi are the exclusive separator bounds inherited from the
// ancestors; nil means unbounded.
func (r *root[K]) checkNode(ref Ref, lo, hi *K) (int, error) {
	n := r.ar.at(ref)
	empty := emptySlot[K]()

	if n.keys[MaxKeys] != empty {
		return 0, ErrGuardOccupied
	}

	// derive the prefix length by direct scan rather than through
	// keyCount, which assumes the very property being checked
	nk := 0
	for nk < MaxKeys && n.keys[nk] != empty {
		nk++
	}
	for i := nk; i < MaxKeys; i++ {
		if n.keys[i] != empty {
			return 0, ErrRaggedPrefix
		}
	}
	for i := 1; i < nk; i++ {
		if n.keys[i-1] >= n.keys[i] {
			return 0, ErrKeysUnsorted
		}
	}
	for i := 0; i < nk; i++ {
		if lo != nil && n.keys[i] <= *lo {
			return 0, ErrKeyOutOfRange
		}
		if hi != nil && n.keys[i] >= *hi {
			return 0, ErrKeyOutOfRange
		}
	}

	if n.isLeaf() {
		for i := 0; i < childCount; i++ {
			if n.children[i] != NilRef {
				return 0, ErrChildShape
			}
		}
		return 1, nil
	}

	// internal: exactly nk+1 children, none missing, none extra
	for i := 0; i < childCount; i++ {
		present := n.children[i] != NilRef
		if present != (i <= nk) {
			return 0, ErrChildShape
		}
	}

	depth := 0
	for i := 0; i <= nk; i++ {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < nk {
			chi = &n.keys[i]
		}
		d, err := r.checkNode(n.children[i], clo, chi)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			depth = d
		} else if d != depth {
			return 0, ErrUnbalanced
		}
	}
	return depth + 1, nil
}
