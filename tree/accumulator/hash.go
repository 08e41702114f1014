package accumulator

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashLen is the length in bytes of a leaf or root hash.
const HashLen = 32

// Hash is a single 32-byte digest: either a leaf submitted by a client or an
// intermediate/root value computed by the accumulator. It is opaque and only
// ever compared byte-wise.
type Hash [HashLen]byte

// ParseHash decodes a hex-encoded hash.
func ParseHash(s string) (Hash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("failed to parse hash: %w", err)
	} else if len(raw) != HashLen {
		return Hash{}, fmt.Errorf("hash is wrong length: wanted=%v, got=%v", HashLen, len(raw))
	}
	var out Hash
	copy(out[:], raw)
	return out, nil
}

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// MarshalText implements encoding.TextMarshaler so that hashes render as hex
// strings in JSON.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// CombineHashes returns the intermediate hash of a and b: the SHA-256 digest
// of the two operands concatenated in byte-wise sorted order. Sorting the
// operands makes the operation commutative, so sibling order at any level of
// the tree does not affect the root. The trade-off is that leaf position is
// not bound into the root; this is a known property of the scheme, not a
// defect.
func CombineHashes(a, b Hash) Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}

	input := make([]byte, 2*HashLen)
	copy(input[:HashLen], a[:])
	copy(input[HashLen:], b[:])
	return sha256.Sum256(input)
}

// ComputeRoot reduces a non-empty, insertion-ordered sequence of leaf hashes
// to its root hash.
//
// Each round partitions the working layer into consecutive pairs and replaces
// every pair (a, b) with CombineHashes(a, b). A trailing unpaired element a is
// replaced with CombineHashes(a, a) rather than promoted unchanged; changing
// this would change every root computed over an odd number of leaves, so it
// must be preserved bit-for-bit. A single leaf is its own root.
//
// This is the reference algorithm: a Calculator produces identical output
// with less work per append.
func ComputeRoot(leaves []Hash) Hash {
	if len(leaves) == 0 {
		panic("cannot compute root of empty leaf sequence")
	}

	layer := make([]Hash, len(leaves))
	copy(layer, leaves)

	for len(layer) > 1 {
		next := make([]Hash, 0, (len(layer)+1)/2)

		for i := 0; i < len(layer); i += 2 {
			if i+1 < len(layer) {
				next = append(next, CombineHashes(layer[i], layer[i+1]))
			} else {
				next = append(next, CombineHashes(layer[i], layer[i]))
			}
		}

		layer = next
	}

	return layer[0]
}
