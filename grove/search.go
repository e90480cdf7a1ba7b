package grove

// contains descends from the root one node per step. At each node the
// any-equal ballot decides presence; otherwise the route index, which
// the sorted prefix and the guard slot make exact, selects the child to
// follow. A nil child link means the node was a leaf and x is absent.
// O(height) node visits, no writes.
func (r *root[K]) contains(x K) bool {
	ref := r.top
	for ref != NilRef {
		n := r.ar.at(ref)
		if laneAnyEqual(&n.keys, x) {
			return true
		}
		ref = n.children[laneRouteIndex(&n.keys, x)]
	}
	return false
}
