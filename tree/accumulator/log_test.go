package accumulator_test

import (
	"path/filepath"
	"testing"

	"github.com/Bren2010/leaflog/db"
	"github.com/Bren2010/leaflog/db/memory"
	"github.com/Bren2010/leaflog/tree/accumulator"
	"github.com/stretchr/testify/require"
)

func leafOf(b byte) accumulator.Hash {
	var out accumulator.Hash
	out[0] = b
	return out
}

func TestLogFirstInsertInitializes(t *testing.T) {
	tx := memory.NewAccumulatorStore()
	log, err := accumulator.Open("default", tx)
	require.NoError(t, err)

	// Nothing to read before the first insertion.
	_, err = log.State()
	require.ErrorIs(t, err, accumulator.ErrUninitialized)

	leaf := leafOf(1)
	acc, err := log.Insert(leaf)
	require.NoError(t, err)
	require.Equal(t, leaf, acc.Root())
	require.Equal(t, []accumulator.Hash{leaf}, acc.Leaves())

	state, err := log.State()
	require.NoError(t, err)
	require.Equal(t, leaf, state.Root())
}

func TestLogInsertSequence(t *testing.T) {
	tx := memory.NewAccumulatorStore()
	log, err := accumulator.Open("default", tx)
	require.NoError(t, err)

	var leaves []accumulator.Hash
	for i := byte(1); i <= 9; i++ {
		leaf := leafOf(i)
		leaves = append(leaves, leaf)

		acc, err := log.Insert(leaf)
		require.NoError(t, err)
		require.Equal(t, accumulator.ComputeRoot(leaves), acc.Root())
		require.Equal(t, len(leaves), acc.Size())
	}

	// State survives reopening against the same store.
	log, err = accumulator.Open("default", tx)
	require.NoError(t, err)
	state, err := log.State()
	require.NoError(t, err)
	require.Equal(t, leaves, state.Leaves())
	require.Equal(t, accumulator.ComputeRoot(leaves), state.Root())
}

func TestLogVerifyIdentity(t *testing.T) {
	log, err := accumulator.Open("default", memory.NewAccumulatorStore())
	require.NoError(t, err)

	require.NoError(t, log.Verify("default"))
	require.ErrorIs(t, log.Verify("other"), accumulator.ErrIdentityMismatch)
}

func TestLogRejectsMalformedPersistedState(t *testing.T) {
	tx := memory.NewAccumulatorStore()
	log, err := accumulator.Open("default", tx)
	require.NoError(t, err)
	_, err = log.Insert(leafOf(1))
	require.NoError(t, err)

	// Truncate the persisted leaf entry behind the log's back.
	raw, err := tx.Get("default")
	require.NoError(t, err)
	tx.Put("default", raw[:len(raw)-1])
	require.NoError(t, tx.Commit())

	_, err = accumulator.Open("default", tx)
	require.ErrorIs(t, err, accumulator.ErrMalformedState)

	_, err = log.State()
	require.ErrorIs(t, err, accumulator.ErrMalformedState)
	_, err = log.Insert(leafOf(2))
	require.ErrorIs(t, err, accumulator.ErrMalformedState)
}

func TestLogOverLevelDB(t *testing.T) {
	tx, err := db.NewLDBAccumulatorStore(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)

	log, err := accumulator.Open("default", tx)
	require.NoError(t, err)

	var leaves []accumulator.Hash
	for i := byte(1); i <= 5; i++ {
		leaves = append(leaves, leafOf(i))
		_, err := log.Insert(leafOf(i))
		require.NoError(t, err)
	}

	// Committed state is visible through a read-only clone.
	read, err := accumulator.Open("default", tx.Clone())
	require.NoError(t, err)
	state, err := read.State()
	require.NoError(t, err)
	require.Equal(t, leaves, state.Leaves())
	require.Equal(t, accumulator.ComputeRoot(leaves), state.Root())
}

func TestLogInsertRespectsQuota(t *testing.T) {
	tx := memory.NewAccumulatorStore()
	// Room for the initial state plus exactly one additional leaf entry.
	tx.Quota = accumulator.InitLen + accumulator.LeafLen

	log, err := accumulator.Open("default", tx)
	require.NoError(t, err)

	_, err = log.Insert(leafOf(1))
	require.NoError(t, err)
	acc, err := log.Insert(leafOf(2))
	require.NoError(t, err)

	// The third insertion exceeds the quota and must not mutate state.
	_, err = log.Insert(leafOf(3))
	require.Error(t, err)

	state, err := log.State()
	require.NoError(t, err)
	require.Equal(t, acc.Root(), state.Root())
	require.Equal(t, 2, state.Size())
}
