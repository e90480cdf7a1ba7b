package grove

import "golang.org/x/exp/constraints"

// The node algorithms were designed around three group-wide ballots run
// by a 32-lane cooperative group: "any lane matches", "all lanes
// occupied" and "index of the first true lane". On a sequential target
// those reductions are the scans below. Callers treat them as single
// cooperative steps; nothing outside this file iterates over key slots
// during a descent.

// laneAnyEqual reports whether any occupied slot holds x.
func laneAnyEqual[K constraints.Signed](keys *[slotCount]K, x K) bool {
	for i := 0; i < MaxKeys; i++ {
		if keys[i] == x {
			return true
		}
	}
	return false
}

// laneAllFull reports whether every real key slot is occupied.
func laneAllFull[K constraints.Signed](keys *[slotCount]K) bool {
	empty := emptySlot[K]()
	for i := 0; i < MaxKeys; i++ {
		if keys[i] == empty {
			return false
		}
	}
	return true
}

// laneRouteIndex returns the first slot that is empty or holds a key
// greater than x. Because the occupied prefix is sorted and the guard
// slot is always empty, the scan cannot leave the array, and the result
// doubles as both the descent index and the insertion index for x.
func laneRouteIndex[K constraints.Signed](keys *[slotCount]K, x K) int {
	empty := emptySlot[K]()
	for i := 0; i < slotCount; i++ {
		if keys[i] == empty || keys[i] > x {
			return i
		}
	}
	// unreachable: the guard slot terminates the scan
	return MaxKeys
}
