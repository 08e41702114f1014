// Package db implements database wrappers that match a common interface.
package db

// AccumulatorStore is the interface the accumulator uses to load and persist
// its state. The mutation cycle is: Get, mutate in memory, Reserve the growth,
// Put, Commit. Nothing is durable until Commit returns nil, and a store must
// surface truncated or otherwise malformed data to the parser rather than
// repairing it.
//
// Writers must hold exclusive access for the full cycle. Read-only clones may
// be handed to any number of concurrent readers.
type AccumulatorStore interface {
	// Clone returns a read-only view of the store, suitable for distributing
	// to child goroutines.
	Clone() AccumulatorStore

	// Get returns the persisted state of the named accumulator, or nil if it
	// has never been written.
	Get(name string) ([]byte, error)

	// Put stages new state for the named accumulator.
	Put(name string, raw []byte)

	// Reserve ensures the backing storage can accommodate the named
	// accumulator growing by an additional `n` bytes. It is called before
	// every Put that grows the state.
	Reserve(name string, n int) error

	// Commit atomically makes all staged writes durable.
	Commit() error
}
