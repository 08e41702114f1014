package accumulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculatorMatchesComputeRoot(t *testing.T) {
	// The incremental calculator must stay byte-identical to the reference
	// reduction at every size, in particular across odd/even transitions.
	calc := NewCalculator(nil)
	var leaves []Hash

	for i := 0; i < 300; i++ {
		leaf := random(t)
		calc.Add(leaf)
		leaves = append(leaves, leaf)

		require.Equal(t, ComputeRoot(leaves), calc.Root(), "size %v", len(leaves))
	}
}

func TestCalculatorPrimedWithLeaves(t *testing.T) {
	leaves := []Hash{hashOf(1), hashOf(2), hashOf(3), hashOf(4), hashOf(5)}
	calc := NewCalculator(leaves)

	require.Equal(t, len(leaves), calc.Size())
	require.Equal(t, ComputeRoot(leaves), calc.Root())
}

func TestCalculatorDuplicateLeaves(t *testing.T) {
	calc := NewCalculator(nil)
	leaf := hashOf(7)
	calc.Add(leaf)
	calc.Add(leaf)

	require.Equal(t, CombineHashes(leaf, leaf), calc.Root())
}

func TestCalculatorEmptyRootPanics(t *testing.T) {
	require.Panics(t, func() { NewCalculator(nil).Root() })
}
