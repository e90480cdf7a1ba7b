package grove

// insert places x in this root's tree, splitting pre-emptively on the
// way down. A full node is split strictly before the descent commits to
// either of its halves, which guarantees two things: the parent a split
// promotes into always has room (it was made non-full one level up),
// and the leaf finally written to is never full, so insertKey's
// precondition holds without a second pass.
//
// The duplicate test runs before the full test on every visited node,
// so a key equal to a would-be median is caught before the split and
// the post-split rebase only ever sees x strictly above or below the
// median.
func (r *root[K]) insert(x K) error {
	parent := NilRef
	cur := r.top
	for {
		n := r.ar.at(cur)
		if laneAnyEqual(&n.keys, x) {
			// set semantics: already present, successful no-op
			return nil
		}
		if laneAllFull(&n.keys) {
			median, right, err := r.split(parent, cur)
			if err != nil {
				return err
			}
			if parent == NilRef {
				// the split grew the tree; the new top is now the parent
				parent = r.top
			}
			if x > median {
				cur = right
			}
			n = r.ar.at(cur)
		}
		at := laneRouteIndex(&n.keys, x)
		child := n.children[at]
		if child == NilRef {
			n.insertKey(x, NilRef)
			return nil
		}
		parent, cur = cur, child
	}
}
