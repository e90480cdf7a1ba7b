package grove

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalKeys[K int64 | int32](f *Forest[K]) int {
	total := 0
	for _, st := range f.Stats() {
		total += st.Keys
	}
	return total
}

func TestBulkScenario(t *testing.T) {
	// wide forest, tiny batch with duplicates
	f, err := New[int64](WithRoots(225))
	require.NoError(t, err)
	require.Equal(t, 225, f.Roots())

	require.NoError(t, f.InsertBulk([]int64{5, 3, 9, 1, 1, 5}))

	assert.True(t, f.Contains(3))
	assert.True(t, f.Contains(9))
	assert.False(t, f.Contains(7))

	// duplicates absorbed: 4 distinct keys live in the forest
	assert.Equal(t, 4, totalKeys(f))
	assert.NoError(t, f.CheckInvariants())
}

func TestSingleRootGrowth(t *testing.T) {
	f, err := New[int64](WithRoots(3))
	require.NoError(t, err)

	// 64 strictly increasing keys into one fixed root
	for i := int64(0); i < 64; i++ {
		require.NoError(t, f.RootInsert(0, i))
	}

	for i := int64(0); i < 64; i++ {
		assert.True(t, f.RootContains(0, i))
	}
	assert.False(t, f.RootContains(0, 64))

	stats := f.Stats()
	assert.Equal(t, 64, stats[0].Keys)
	assert.GreaterOrEqual(t, stats[0].Height, 2, "64 keys cannot fit one node")
	assert.Equal(t, 0, stats[1].Keys)
	assert.Equal(t, 0, stats[2].Keys)

	// exact height depends on the split midpoint; balance and fan-out
	// are what the growth must preserve
	assert.NoError(t, f.CheckInvariants())
}

func TestRoundTrip(t *testing.T) {
	for _, withBloom := range []bool{false, true} {
		name := "plain"
		if withBloom {
			name = "bloom"
		}
		t.Run(name, func(t *testing.T) {
			opts := []Option{WithRoots(7)}
			if withBloom {
				opts = append(opts, WithBloom(5000))
			}
			f, err := New[int64](opts...)
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(42))
			keys := make([]int64, 5000)
			for i := range keys {
				// even keys only, so odd probes are reliably absent
				keys[i] = int64(rng.Intn(1<<40)) * 2
			}
			require.NoError(t, f.InsertBulk(keys))
			require.NoError(t, f.CheckInvariants())

			for _, x := range keys {
				assert.True(t, f.Contains(x))
			}
			for i := 0; i < 2000; i++ {
				assert.False(t, f.Contains(int64(rng.Intn(1<<40))*2+1))
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	f, err := New[int64](WithRoots(4))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.RootInsert(2, 77))
	}
	assert.True(t, f.Contains(77))
	assert.Equal(t, 1, totalKeys(f))
	assert.NoError(t, f.CheckInvariants())
}

func TestPartitionIndependence(t *testing.T) {
	keys := rand.New(rand.NewSource(7)).Perm(500)

	bulk, err := New[int64](WithRoots(5))
	require.NoError(t, err)
	batch := make([]int64, len(keys))
	for i, k := range keys {
		batch[i] = int64(k)
	}
	require.NoError(t, bulk.InsertBulk(batch))

	single, err := New[int64](WithRoots(5))
	require.NoError(t, err)
	for _, k := range batch {
		require.NoError(t, single.Insert(k))
	}

	// per-root placement may differ; the membership reduction may not
	for i := int64(-10); i < 520; i++ {
		assert.Equal(t, bulk.Contains(i), single.Contains(i), "key %d", i)
	}
	assert.Equal(t, totalKeys(bulk), totalKeys(single))
}

func TestInsertRotatesAcrossRoots(t *testing.T) {
	f, err := New[int64](WithRoots(4))
	require.NoError(t, err)

	for i := int64(0); i < 8; i++ {
		require.NoError(t, f.Insert(i))
	}
	for _, st := range f.Stats() {
		assert.Equal(t, 2, st.Keys)
	}
}

func TestConcurrentInsertBurst(t *testing.T) {
	// a burst of exactly R simultaneous callers draws R consecutive
	// rotor tickets, which map to R distinct roots; run with -race
	const workers = 8
	f, err := New[int64](WithRoots(workers))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[w] = f.Insert(int64(w))
		}()
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
	}
	for _, st := range f.Stats() {
		assert.Equal(t, 1, st.Keys, "each root takes exactly one key of the burst")
	}
	for w := int64(0); w < workers; w++ {
		assert.True(t, f.Contains(w))
	}
	assert.NoError(t, f.CheckInvariants())
}

func TestReservedKeyRejected(t *testing.T) {
	f, err := New[int64](WithRoots(2))
	require.NoError(t, err)

	assert.ErrorIs(t, f.Insert(math.MinInt64), ErrReservedKey)
	assert.ErrorIs(t, f.RootInsert(0, math.MinInt64), ErrReservedKey)

	// the batch is vetted before any worker starts
	err = f.InsertBulk([]int64{1, 2, math.MinInt64, 4})
	assert.ErrorIs(t, err, ErrReservedKey)
	assert.Equal(t, 0, totalKeys(f))
}

func TestRootRangeChecked(t *testing.T) {
	f, err := New[int64](WithRoots(2))
	require.NoError(t, err)
	assert.ErrorIs(t, f.RootInsert(-1, 5), ErrRootRange)
	assert.ErrorIs(t, f.RootInsert(2, 5), ErrRootRange)
}

func TestRootCountValidated(t *testing.T) {
	_, err := New[int64](WithRoots(0))
	assert.ErrorIs(t, err, ErrRootCount)
	_, err = New[int64](WithRoots(-3))
	assert.ErrorIs(t, err, ErrRootCount)
}

func TestNodeLimitSurfacesExhaustion(t *testing.T) {
	f, err := New[int64](WithRoots(1), WithNodeLimit(1))
	require.NoError(t, err)

	for i := int64(0); i < MaxKeys; i++ {
		require.NoError(t, f.Insert(i))
	}
	assert.ErrorIs(t, f.Insert(MaxKeys), ErrNodesExhausted)
	assert.NoError(t, f.CheckInvariants())
}

func TestNarrowKeyType(t *testing.T) {
	f, err := New[int32](WithRoots(2))
	require.NoError(t, err)

	require.NoError(t, f.InsertBulk([]int32{-5, 0, 5, math.MaxInt32, math.MinInt32 + 1}))
	assert.True(t, f.Contains(-5))
	assert.True(t, f.Contains(math.MaxInt32))
	assert.False(t, f.Contains(6))
	assert.ErrorIs(t, f.Insert(math.MinInt32), ErrReservedKey)
	assert.NoError(t, f.CheckInvariants())
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(n *node[int64])
		want    error
	}{
		{"unsorted keys", func(n *node[int64]) {
			n.keys[0], n.keys[1] = n.keys[1], n.keys[0]
		}, ErrKeysUnsorted},
		{"hole in the prefix", func(n *node[int64]) {
			n.keys[1] = emptySlot[int64]()
		}, ErrRaggedPrefix},
		{"guard slot occupied", func(n *node[int64]) {
			n.keys[MaxKeys] = 999
		}, ErrGuardOccupied},
		{"child link on a leaf", func(n *node[int64]) {
			n.children[5] = Ref(1)
		}, ErrChildShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New[int64](WithRoots(1))
			require.NoError(t, err)
			require.NoError(t, f.InsertBulk([]int64{1, 2, 3, 4}))
			require.NoError(t, f.CheckInvariants())

			tt.corrupt(f.roots[0].ar.at(f.roots[0].top))
			assert.ErrorIs(t, f.CheckInvariants(), tt.want)
		})
	}
}

func TestDump(t *testing.T) {
	f, err := New[int64](WithRoots(2))
	require.NoError(t, err)
	require.NoError(t, f.RootInsert(0, 42))

	out := f.Dump()
	assert.Contains(t, out, "root[0]")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "(empty)")

	assert.Contains(t, f.DumpRoot(1), "(empty)")
}
