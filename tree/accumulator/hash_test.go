package accumulator

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func random(t *testing.T) Hash {
	t.Helper()

	var out Hash
	_, err := rand.Read(out[:])
	require.NoError(t, err)
	return out
}

// hashOf returns the leaf hash for an integer value: the SHA-256 digest of
// its 4-byte little-endian encoding. This is the client-side hashing rule the
// CLI applies.
func hashOf(v uint32) Hash {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return sha256.Sum256(buf[:])
}

func TestCombineHashesCommutes(t *testing.T) {
	for i := 0; i < 100; i++ {
		a, b := random(t), random(t)
		require.Equal(t, CombineHashes(a, b), CombineHashes(b, a))
	}
}

func TestCombineHashesDeterministic(t *testing.T) {
	a, b := random(t), random(t)
	require.Equal(t, CombineHashes(a, b), CombineHashes(a, b))

	// The smaller operand is hashed first.
	left, right := a, b
	if left.String() > right.String() {
		left, right = right, left
	}
	expected := sha256.Sum256(append(left[:], right[:]...))
	require.Equal(t, Hash(expected), CombineHashes(a, b))
}

func TestComputeRootSingleLeaf(t *testing.T) {
	leaf := hashOf(1337)
	require.Equal(t, leaf, ComputeRoot([]Hash{leaf}))
}

func TestComputeRootSelfPairsOddLayer(t *testing.T) {
	// A trailing unpaired element is combined with itself, not promoted
	// unchanged.
	a, b, c := hashOf(1), hashOf(2), hashOf(3)
	expected := CombineHashes(CombineHashes(a, b), CombineHashes(c, c))
	require.Equal(t, expected, ComputeRoot([]Hash{a, b, c}))
}

func TestComputeRootFiveLeaves(t *testing.T) {
	//       Root
	//        /\
	//      H3  H4
	//     /\    |
	//  H0   H1  H2(H2)
	//  /\   /\  |
	// 1 2  3 4  5(5)
	leaves := []Hash{hashOf(1), hashOf(2), hashOf(3), hashOf(4), hashOf(5)}

	h0 := CombineHashes(leaves[0], leaves[1])
	h1 := CombineHashes(leaves[2], leaves[3])
	h2 := CombineHashes(leaves[4], leaves[4])
	h3 := CombineHashes(h0, h1)
	h4 := CombineHashes(h2, h2)

	require.Equal(t, CombineHashes(h3, h4), ComputeRoot(leaves))
}

func TestComputeRootDuplicateLeaves(t *testing.T) {
	leaf := hashOf(7)
	require.Equal(t, CombineHashes(leaf, leaf), ComputeRoot([]Hash{leaf, leaf}))
}

func TestComputeRootDoesNotMutateInput(t *testing.T) {
	leaves := []Hash{hashOf(1), hashOf(2), hashOf(3)}
	snapshot := make([]Hash, len(leaves))
	copy(snapshot, leaves)

	ComputeRoot(leaves)
	require.Equal(t, snapshot, leaves)
}

func TestComputeRootEmptyPanics(t *testing.T) {
	require.Panics(t, func() { ComputeRoot(nil) })
}

func TestParseHash(t *testing.T) {
	h := random(t)
	parsed, err := ParseHash(h.String())
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	_, err = ParseHash("abcd")
	require.Error(t, err)
	_, err = ParseHash("not hex at all")
	require.Error(t, err)
}

func TestHashTextRoundTrip(t *testing.T) {
	h := random(t)
	text, err := h.MarshalText()
	require.NoError(t, err)

	var out Hash
	require.NoError(t, out.UnmarshalText(text))
	require.Equal(t, h, out)
}
