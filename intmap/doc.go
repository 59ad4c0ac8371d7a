// Package intmap implements a persistent, sparse map keyed by nonnegative
// integers, with an ephemeral transient variant for batched in-place
// mutation.
//
// The representation is a fixed branching-factor (32-way) radix trie over
// the bits of the key, windowed by a (min, shift) pair describing the key
// range [min, min+2^shift) a given root can address. Persistent operations
// (Add, Remove, Union, Intersect) never mutate existing nodes; they clone
// the path from the root down to the change and share everything else.
// Transient operations (Transient.Add) mutate nodes in place when they are
// already owned by the transient's edit token, and clone-on-write when they
// are not, giving batched construction close to the cost of a mutable trie
// while the result remains safe to freeze back into a shared persistent
// value with Transient.Persistent.
package intmap
