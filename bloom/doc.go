// Package bloom provides a small double-hashed Bloom filter over 64 bit
// elements.
//
// It exists to pre-filter membership sweeps across a grove forest: a
// filter answers "definitely not present" or "maybe present" for one
// root, so a negative sweep can skip most roots without touching their
// nodes. There are no false negatives, so callers that fall through to
// a real lookup on "maybe" keep exact results.
//
// The k probe positions are derived from two mixes of the element with
// the standard h1 + i*h2 double-hashing construction; h2 is forced odd
// so the probe sequence walks the whole bit space.
package bloom
