package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestrie/go-grove/grove"
)

var (
	flagCount      int
	flagSeed       int64
	flagSequential bool
)

// fillCmd bulk loads a freshly constructed forest, verifies the
// structural invariants and a membership sample, and reports per-root
// shape. It is the operational smoke test for the insertion path.
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Bulk load a forest with generated keys and verify it",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newForest()
		if err != nil {
			return err
		}

		keys := generateKeys(flagCount, flagSeed, flagSequential)
		logger.Debug().Int("keys", len(keys)).Int("roots", f.Roots()).Msg("loading")

		start := time.Now()
		if err := f.InsertBulk(keys); err != nil {
			return fmt.Errorf("bulk load failed: %w", err)
		}
		elapsed := time.Since(start)

		if err := f.CheckInvariants(); err != nil {
			return fmt.Errorf("invariant check failed after load: %w", err)
		}
		for _, x := range keys[:min(len(keys), 1000)] {
			if !f.Contains(x) {
				return fmt.Errorf("loaded key %d not found", x)
			}
		}

		var nodes, total int
		maxHeight := 0
		for _, st := range f.Stats() {
			nodes += st.Nodes
			total += st.Keys
			if st.Height > maxHeight {
				maxHeight = st.Height
			}
		}
		logger.Info().
			Int("keys", len(keys)).
			Int("distinct", total).
			Int("roots", f.Roots()).
			Int("nodes", nodes).
			Int("max_height", maxHeight).
			Dur("elapsed", elapsed).
			Msg("loaded and verified")
		return nil
	},
}

func newForest() (*grove.Forest[int64], error) {
	opts := []grove.Option{}
	if flagRoots > 0 {
		opts = append(opts, grove.WithRoots(flagRoots))
	}
	if flagNodeLimit > 0 {
		opts = append(opts, grove.WithNodeLimit(flagNodeLimit))
	}
	if flagBloom > 0 {
		opts = append(opts, grove.WithBloom(flagBloom))
	}
	return grove.New[int64](opts...)
}

func generateKeys(count int, seed int64, sequential bool) []int64 {
	keys := make([]int64, count)
	if sequential {
		for i := range keys {
			keys[i] = int64(i)
		}
		return keys
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range keys {
		// avoid the reserved minimum value
		keys[i] = rng.Int63n(math.MaxInt64) - math.MaxInt64/2
	}
	return keys
}

func init() {
	fillCmd.Flags().IntVar(&flagCount, "count", 100000, "number of keys to insert")
	fillCmd.Flags().Int64Var(&flagSeed, "seed", 1, "random seed for key generation")
	fillCmd.Flags().BoolVar(&flagSequential, "sequential", false, "insert 0..count-1 instead of random keys")
	rootCmd.AddCommand(fillCmd)
}
