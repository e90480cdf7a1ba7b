package bloom

import "errors"

const (
	// DefaultBitsPerElement gives roughly a 1% false positive rate with
	// DefaultK probes.
	DefaultBitsPerElement = 10

	// DefaultK is the probe count matched to DefaultBitsPerElement.
	DefaultK = 7

	// minBits floors tiny filters so sizing arithmetic never degenerates.
	minBits = 64
)

var (
	ErrZeroCapacity = errors.New("bloom: expected element count and bits per element must be nonzero")
	ErrBadK         = errors.New("bloom: probe count k must be nonzero")
)

// Filter is a fixed-size double-hashed Bloom filter. It is not safe for
// concurrent mutation; in a grove forest each filter belongs to exactly
// one root and inherits that root's one-writer contract.
type Filter struct {
	bits  []uint64
	mBits uint64
	k     uint8
	n     uint64
}

// NewFilter sizes a filter for the expected element count at the given
// bits-per-element budget.
func NewFilter(expectedElements, bitsPerElement uint64, k uint8) (*Filter, error) {
	if expectedElements == 0 || bitsPerElement == 0 {
		return nil, ErrZeroCapacity
	}
	if k == 0 {
		return nil, ErrBadK
	}
	mBits := MBits(expectedElements, bitsPerElement)
	return &Filter{
		bits:  make([]uint64, Words(mBits)),
		mBits: Words(mBits) * 64,
		k:     k,
	}, nil
}

// Insert adds elem to the filter. Re-inserting a present element is a
// no-op on the bitset.
func (f *Filter) Insert(elem uint64) {
	h1, h2 := hashPair(elem)
	for i := uint64(0); i < uint64(f.k); i++ {
		bit := (h1 + i*h2) % f.mBits
		f.bits[bit>>6] |= 1 << (bit & 63)
	}
	f.n++
}

// MaybeContains reports false only when elem was definitely never
// inserted. A true result may be a false positive.
func (f *Filter) MaybeContains(elem uint64) bool {
	h1, h2 := hashPair(elem)
	for i := uint64(0); i < uint64(f.k); i++ {
		bit := (h1 + i*h2) % f.mBits
		if f.bits[bit>>6]&(1<<(bit&63)) == 0 {
			return false
		}
	}
	return true
}

// NInserted is the count of Insert calls, duplicates included.
func (f *Filter) NInserted() uint64 {
	return f.n
}

// hashPair derives the two base hashes for double hashing. The mixes
// are splitmix64 finalizers; h2 is forced odd.
func hashPair(elem uint64) (uint64, uint64) {
	h1 := mix64(elem)
	h2 := mix64(elem^0x9e3779b97f4a7c15) | 1
	return h1, h2
}

func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e9b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
