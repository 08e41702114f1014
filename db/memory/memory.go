// Package memory provides in-memory implementations of the database
// interfaces, primarily for use in tests.
package memory

import (
	"fmt"

	"github.com/Bren2010/leaflog/db"
)

func dup(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// AccumulatorStore is an in-memory implementation of db.AccumulatorStore. An
// optional quota bounds the total bytes reserved per accumulator, so the
// growth-accounting path can be exercised without a real capacity-limited
// backend.
type AccumulatorStore struct {
	Data     map[string][]byte
	Quota    int // Maximum reserved bytes per accumulator; 0 means unlimited.
	ReadOnly bool

	reserved map[string]int
	batch    map[string][]byte
}

func NewAccumulatorStore() *AccumulatorStore {
	return &AccumulatorStore{
		Data:     make(map[string][]byte),
		reserved: make(map[string]int),
		batch:    make(map[string][]byte),
	}
}

func (s *AccumulatorStore) Clone() db.AccumulatorStore {
	return &AccumulatorStore{
		Data:     s.Data,
		Quota:    s.Quota,
		ReadOnly: true,

		reserved: s.reserved,
		batch:    make(map[string][]byte),
	}
}

func (s *AccumulatorStore) Get(name string) ([]byte, error) {
	if raw, ok := s.batch[name]; ok {
		return dup(raw), nil
	}
	return dup(s.Data[name]), nil
}

func (s *AccumulatorStore) Put(name string, raw []byte) {
	if s.ReadOnly {
		panic("store is readonly")
	}
	s.batch[name] = dup(raw)
}

func (s *AccumulatorStore) Reserve(name string, n int) error {
	if s.ReadOnly {
		panic("store is readonly")
	}
	if s.Quota > 0 && s.reserved[name]+n > s.Quota {
		return fmt.Errorf("reservation exceeds quota: %v+%v > %v", s.reserved[name], n, s.Quota)
	}
	s.reserved[name] += n
	return nil
}

func (s *AccumulatorStore) Commit() error {
	if s.ReadOnly {
		panic("store is readonly")
	}
	for name, raw := range s.batch {
		s.Data[name] = raw
	}
	s.batch = make(map[string][]byte)
	return nil
}
