package grove

// split divides the full node at cur around its median key. The lower
// half stays in place, the upper half moves into a freshly allocated
// right sibling, and the median is promoted: into parent when there is
// one, otherwise into a brand-new root holding exactly the two halves.
// Root splits are the only way tree height grows.
//
// Every allocation happens before the first mutation, so an exhausted
// node limit leaves the tree untouched. The returned median and sibling
// let the caller rebase its descent into the correct half.
func (r *root[K]) split(parent, cur Ref) (K, Ref, error) {
	n := r.ar.at(cur)
	if !laneAllFull(&n.keys) {
		panic("grove: split called on a node that is not full")
	}

	rightRef, err := r.ar.alloc()
	if err != nil {
		var zero K
		return zero, NilRef, err
	}
	topRef := NilRef
	if parent == NilRef {
		if topRef, err = r.ar.alloc(); err != nil {
			var zero K
			return zero, NilRef, err
		}
	}

	// Shadow copy: the in-place rewrite below overwrites slots it still
	// needs to read.
	scratch := *n

	const mid = MaxKeys / 2
	median := scratch.keys[mid]

	right := r.ar.at(rightRef)
	for i := mid + 1; i < MaxKeys; i++ {
		right.keys[i-mid-1] = scratch.keys[i]
		right.children[i-mid-1] = scratch.children[i]
	}
	right.children[MaxKeys-mid-1] = scratch.children[MaxKeys]

	empty := emptySlot[K]()
	for i := mid; i < MaxKeys; i++ {
		n.keys[i] = empty
		n.children[i+1] = NilRef
	}

	if parent == NilRef {
		top := r.ar.at(topRef)
		top.keys[0] = median
		top.children[0] = cur
		top.children[1] = rightRef
		r.top = topRef
		return median, rightRef, nil
	}

	// Pre-emptive splitting made the parent non-full before the descent
	// reached cur, so this never cascades.
	r.ar.at(parent).insertKey(median, rightRef)
	return median, rightRef, nil
}
