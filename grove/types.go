package grove

import (
	"errors"
	"unsafe"

	"golang.org/x/exp/constraints"
)

const (
	// Lanes is the cooperative group width the node layout was sized for;
	// one lane owns one key slot.
	Lanes = 32

	// MaxKeys is the number of real key slots in a node. A node holding
	// MaxKeys keys is full and must be split before it is written again.
	MaxKeys = Lanes - 1

	// slotCount includes the guard slot, which is permanently empty so
	// that slot scans terminate in bounds.
	slotCount = MaxKeys + 1

	// childCount is one more than slotCount; the guard slot's right child
	// link exists only to keep the "child after key" indexing uniform and
	// is never used.
	childCount = slotCount + 1
)

// Ref is an arena-relative node index. Refs are only meaningful within
// the root that issued them; nodes are never shared between roots.
type Ref uint32

// NilRef is the null child link. Arena slot 0 is reserved so that the
// zero value of a link is unambiguously "no child".
const NilRef Ref = 0

var (
	ErrRootCount      = errors.New("grove: root count must be at least 1")
	ErrRootRange      = errors.New("grove: root index out of range")
	ErrReservedKey    = errors.New("grove: the minimum key value is reserved as the empty-slot marker")
	ErrNodesExhausted = errors.New("grove: per-root node limit reached")
)

// Structural invariant violations reported by CheckInvariants.
var (
	ErrKeysUnsorted  = errors.New("grove: occupied key slots are not strictly ascending")
	ErrRaggedPrefix  = errors.New("grove: occupied key slots do not form a contiguous prefix")
	ErrGuardOccupied = errors.New("grove: the guard slot must remain empty")
	ErrKeyOutOfRange = errors.New("grove: a key violates its subtree separator bounds")
	ErrChildShape    = errors.New("grove: child links do not match the occupied key count")
	ErrUnbalanced    = errors.New("grove: leaves are not all at the same depth")
)

// emptySlot returns the reserved empty-slot marker for K: the minimum
// representable value of the key type.
func emptySlot[K constraints.Signed]() K {
	var k K
	return K(-1) << (unsafe.Sizeof(k)*8 - 1)
}

// keyBits maps a key to its sign-extended 64 bit image, the form the
// bloom pre-filter hashes.
func keyBits[K constraints.Signed](x K) uint64 {
	return uint64(int64(x))
}
