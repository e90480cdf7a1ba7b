package grove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) *root[int64] {
	t.Helper()
	r := &root[int64]{ar: newArena[int64](0)}
	top, err := r.ar.alloc()
	require.NoError(t, err)
	r.top = top
	return r
}

func TestSplitRootPromotesMedian(t *testing.T) {
	r := newTestRoot(t)
	oldTop := r.top
	leaf := r.ar.at(oldTop)
	for i := 0; i < MaxKeys; i++ {
		leaf.keys[i] = int64(i)
	}

	median, right, err := r.split(NilRef, oldTop)
	require.NoError(t, err)

	const mid = MaxKeys / 2
	assert.Equal(t, int64(mid), median)

	// height grew: a new root holds only the median and the two halves
	require.NotEqual(t, oldTop, r.top)
	top := r.ar.at(r.top)
	assert.Equal(t, 1, top.keyCount())
	assert.Equal(t, median, top.keys[0])
	assert.Equal(t, oldTop, top.children[0])
	assert.Equal(t, right, top.children[1])

	left := r.ar.at(oldTop)
	assert.Equal(t, mid, left.keyCount())
	assert.Equal(t, []int64{0, 1, 2}, left.keys[:3])

	sib := r.ar.at(right)
	assert.Equal(t, MaxKeys-mid-1, sib.keyCount())
	assert.Equal(t, int64(mid+1), sib.keys[0])
	assert.Equal(t, int64(MaxKeys-1), sib.keys[sib.keyCount()-1])

	// neither half retains the median
	assert.False(t, laneAnyEqual(&left.keys, median))
	assert.False(t, laneAnyEqual(&sib.keys, median))
}

func TestSplitNonFullPanics(t *testing.T) {
	r := newTestRoot(t)
	assert.Panics(t, func() { _, _, _ = r.split(NilRef, r.top) })
}

func TestSplitIntoParent(t *testing.T) {
	r := newTestRoot(t)

	// drive enough ascending inserts through the public path to force a
	// split below the root
	for i := int64(0); i < 100; i++ {
		require.NoError(t, r.insert(i))
	}

	top := r.ar.at(r.top)
	require.False(t, top.isLeaf())
	assert.Greater(t, top.keyCount(), 1, "non-root splits must promote into the existing root")

	for i := int64(0); i < 100; i++ {
		assert.True(t, r.contains(i), "key %d lost across splits", i)
	}
	assert.False(t, r.contains(100))

	_, err := r.checkNode(r.top, nil, nil)
	assert.NoError(t, err)
}

func TestSplitExhaustionLeavesTreeIntact(t *testing.T) {
	r := &root[int64]{ar: newArena[int64](1)}
	top, err := r.ar.alloc()
	require.NoError(t, err)
	r.top = top

	for i := int64(0); i < MaxKeys; i++ {
		require.NoError(t, r.insert(i))
	}

	// the next insert needs a split and the arena has no budget left
	err = r.insert(MaxKeys)
	require.ErrorIs(t, err, ErrNodesExhausted)

	// the failed split must not have disturbed the full leaf
	for i := int64(0); i < MaxKeys; i++ {
		assert.True(t, r.contains(i))
	}
	_, err = r.checkNode(r.top, nil, nil)
	assert.NoError(t, err)
}
