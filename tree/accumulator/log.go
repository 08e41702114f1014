package accumulator

import (
	"errors"
	"fmt"

	"github.com/Bren2010/leaflog/db"
)

// ErrUninitialized is returned when reading an accumulator that has never
// had a leaf inserted.
var ErrUninitialized = errors.New("accumulator is not initialized")

// Log binds a named accumulator to the store that persists it. Every
// operation is a full load -> mutate in memory -> replace cycle against the
// store; nothing is patched in place.
//
// The single-writer contract applies: at most one Insert may be in flight per
// named accumulator. Read-only operations may run concurrently against a
// store clone.
type Log struct {
	name string
	tx   db.AccumulatorStore
}

// Open binds the named accumulator in the given store. If persisted state
// exists it is parsed once to reject malformed data up front.
func Open(name string, tx db.AccumulatorStore) (*Log, error) {
	raw, err := tx.Get(name)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if _, err := Parse(raw); err != nil {
			return nil, fmt.Errorf("failed to open accumulator %q: %w", name, err)
		}
	}
	return &Log{name: name, tx: tx}, nil
}

// Name returns the identity this log is bound to.
func (l *Log) Name() string { return l.name }

// Verify checks that a request addressed to `name` targets this log.
func (l *Log) Verify(name string) error {
	if name != l.name {
		return fmt.Errorf("%w: wanted %q, got %q", ErrIdentityMismatch, l.name, name)
	}
	return nil
}

// Insert appends a leaf and persists the updated state. The first insertion
// creates the accumulator. Either both the leaf sequence and the root are
// durably updated, or neither is: the in-memory accumulator is discarded if
// the store fails before Commit.
func (l *Log) Insert(leaf Hash) (*Accumulator, error) {
	raw, err := l.tx.Get(l.name)
	if err != nil {
		return nil, err
	}

	var acc *Accumulator
	if raw == nil {
		if err := l.tx.Reserve(l.name, InitLen); err != nil {
			return nil, fmt.Errorf("failed to reserve space: %w", err)
		}
		acc = New(leaf)
	} else {
		if acc, err = Parse(raw); err != nil {
			return nil, err
		}
		// The serialized state grows by exactly one leaf entry.
		if err := l.tx.Reserve(l.name, LeafLen); err != nil {
			return nil, fmt.Errorf("failed to reserve space: %w", err)
		}
		acc.Insert(leaf)
	}

	l.tx.Put(l.name, acc.Marshal())
	if err := l.tx.Commit(); err != nil {
		return nil, err
	}
	return acc, nil
}

// State returns a snapshot of the persisted accumulator, or ErrUninitialized
// if no leaf has ever been inserted.
func (l *Log) State() (*Accumulator, error) {
	raw, err := l.tx.Get(l.name)
	if err != nil {
		return nil, err
	} else if raw == nil {
		return nil, ErrUninitialized
	}
	return Parse(raw)
}
