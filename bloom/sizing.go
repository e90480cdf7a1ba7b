package bloom

// MBits returns the bitset size for the expected element count at the
// given bits-per-element budget, floored so degenerate inputs still
// yield a usable filter.
func MBits(expectedElements, bitsPerElement uint64) uint64 {
	mBits := expectedElements * bitsPerElement
	if mBits < minBits {
		mBits = minBits
	}
	return mBits
}

// Words returns the uint64 word count backing a bitset of mBits.
func Words(mBits uint64) uint64 {
	return (mBits + 63) / 64
}
