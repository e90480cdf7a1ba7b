package grove

/*

# Grove primitives for partitioned B-tree indexing

This package provides a forest of independent, fixed fan-out B-trees
designed for parallel bulk loading. Write load is sharded across the
forest so that every root is only ever mutated by a single worker, and
membership is answered by an OR-reduction over the roots.

It follows the same "functional primitives" style as `go-merklelog/mmr`:

- small, composable functions
- fixed, explicit slot layouts
- a burden of knowledge on the caller for hot paths

## Node layout

A node carries 32 key slots and 33 child links. The final key slot is
the guard: it is permanently empty, so the route-index scan always
terminates in bounds without a separate length field. The layout was
sized for a 32-wide cooperative execution group, one lane per slot; on
this target the group-wide any/all/first-true-index ballots reduce to
the plain array scans in lanes.go. What is preserved is the result of
those ballots - a strictly ascending occupied prefix fenced by the
empty-slot marker - not the lock-step execution style.

## Core invariants

1. occupied key slots are strictly ascending and form a contiguous
   prefix; the guard slot is always empty
2. a node is a leaf iff its first child link is nil; internal nodes
   have exactly one more child than keys and every leaf sits at the
   same depth below its root
3. a full node is split before it is descended into, so the node an
   insertion finally writes to always has room (pre-emptive splitting)
4. the minimum representable key value marks an empty slot and is not
   an insertable key

## Concurrency contract

Each root is an independent tree backed by its own arena. InsertBulk
runs one worker per root; position i of the batch belongs to root
i mod R, so no two workers ever touch the same tree and the insertion
path needs no locks. Reads of a root must not be scheduled while that
same root is being written - this is a caller obligation, not
something the package enforces. Single-key Insert rotates an atomic
counter across the roots: a burst of up to R simultaneous calls draws
consecutive tickets and lands on R distinct roots. A sustained
concurrent stream can lap the rotation back onto a root whose earlier
call is still in flight; such streams belong on InsertBulk, whose
partitioning cannot lap.

Duplicate keys are absorbed silently: the forest has set semantics and
inserting a present key is a successful no-op.

*/
