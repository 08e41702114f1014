// Package accumulator implements an appendable Merkle accumulator: an ordered
// sequence of 32-byte leaf hashes summarized by a single root hash that is
// recomputed after every insertion.
package accumulator

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrMalformedState is returned when a persisted accumulator cannot be
	// parsed into a well-formed (root, leaves) pair.
	ErrMalformedState = errors.New("malformed accumulator state")

	// ErrIdentityMismatch is returned when a request targets an accumulator
	// other than the one this process serves.
	ErrIdentityMismatch = errors.New("accumulator identity mismatch")
)

const (
	// LeafLen is the serialized size of one leaf entry. Persisted state grows
	// by exactly this much per insertion.
	LeafLen = HashLen

	// InitLen is the serialized size of an accumulator holding one leaf:
	// 32 (root) + 4 (leaf count) + 32 (first leaf).
	InitLen = HashLen + 4 + LeafLen
)

// Accumulator is an ordered sequence of leaf hashes with a cached root. The
// zero value is not usable; an accumulator comes into existence with its
// first leaf, via New.
//
// An Accumulator is not safe for concurrent mutation. The owner must
// serialize calls to Insert; any number of readers may call Root and Leaves
// against a quiesced instance.
type Accumulator struct {
	root   Hash
	leaves []Hash
	calc   *Calculator
}

// New creates an accumulator seeded with its first leaf. A single leaf is its
// own root.
func New(first Hash) *Accumulator {
	return &Accumulator{root: first, leaves: []Hash{first}}
}

// Insert appends leaf to the accumulator and recomputes the root. Any 32-byte
// value is accepted, including duplicates of existing leaves; insertion never
// fails.
func (acc *Accumulator) Insert(leaf Hash) {
	if acc.calc == nil {
		acc.calc = NewCalculator(acc.leaves)
	}
	acc.leaves = append(acc.leaves, leaf)
	acc.calc.Add(leaf)
	acc.root = acc.calc.Root()
}

// Root returns the current root hash.
func (acc *Accumulator) Root() Hash { return acc.root }

// Size returns the number of leaves inserted so far.
func (acc *Accumulator) Size() int { return len(acc.leaves) }

// Leaves returns a copy of the leaf sequence in insertion order.
func (acc *Accumulator) Leaves() []Hash {
	out := make([]Hash, len(acc.leaves))
	copy(out, acc.leaves)
	return out
}

// Marshal returns the serialized accumulator: the root hash, a little-endian
// uint32 leaf count, and the leaf hashes in insertion order.
func (acc *Accumulator) Marshal() []byte {
	out := make([]byte, 0, HashLen+4+LeafLen*len(acc.leaves))

	out = append(out, acc.root[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(acc.leaves)))
	for _, leaf := range acc.leaves {
		out = append(out, leaf[:]...)
	}

	return out
}

// Parse deserializes an accumulator from its persisted representation. It
// returns ErrMalformedState if the buffer is truncated, has trailing data,
// claims zero leaves, or carries a root inconsistent with its leaves; in no
// case is a partially-initialized accumulator returned.
func Parse(raw []byte) (*Accumulator, error) {
	if len(raw) < HashLen+4 {
		return nil, fmt.Errorf("%w: header is truncated: %v bytes", ErrMalformedState, len(raw))
	}
	var root Hash
	copy(root[:], raw[:HashLen])

	n := binary.LittleEndian.Uint32(raw[HashLen : HashLen+4])
	if n == 0 {
		return nil, fmt.Errorf("%w: leaf count is zero", ErrMalformedState)
	}
	rest := raw[HashLen+4:]
	if len(rest) != int(n)*LeafLen {
		return nil, fmt.Errorf("%w: wanted %v leaf bytes, got %v", ErrMalformedState, int(n)*LeafLen, len(rest))
	}

	leaves := make([]Hash, n)
	for i := range leaves {
		copy(leaves[i][:], rest[i*LeafLen:(i+1)*LeafLen])
	}

	if computed := ComputeRoot(leaves); computed != root {
		return nil, fmt.Errorf("%w: stored root does not match leaves", ErrMalformedState)
	}

	return &Accumulator{root: root, leaves: leaves}, nil
}
