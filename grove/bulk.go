package grove

import "golang.org/x/sync/errgroup"

// InsertBulk loads a batch of keys into the forest. Batch position i
// belongs to root i mod R; one worker per root strides through its
// positions (i, i+R, i+2R, ...) inserting sequentially. Every root is
// written by exactly one worker, so the load needs no locking anywhere
// on the insertion path. Duplicates, within the batch or against
// existing content, are absorbed silently.
//
// The whole batch is vetted for the reserved key before any worker
// starts, so a reserved-key error never leaves a partial load. A
// node-limit error stops the offending root's stream; other roots run
// to completion and the first error is returned.
func (f *Forest[K]) InsertBulk(keys []K) error {
	empty := emptySlot[K]()
	for _, x := range keys {
		if x == empty {
			return ErrReservedKey
		}
	}

	g := new(errgroup.Group)
	for ri := range f.roots {
		ri := ri
		g.Go(func() error {
			for i := ri; i < len(keys); i += len(f.roots) {
				if err := f.insertInRoot(ri, keys[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
