package db

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
)

const ldbAccumulatorPrefix = "a"

func dup(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}

// ldbConn is a wrapper around a base LevelDB database that handles batching
// writes between commits transparently.
type ldbConn struct {
	conn     *leveldb.DB
	readonly bool
	batch    map[string][]byte
}

func newLDBConn(conn *leveldb.DB, readonly bool) *ldbConn {
	return &ldbConn{conn, readonly, make(map[string][]byte)}
}

func (c *ldbConn) Get(key string) ([]byte, error) {
	if value, ok := c.batch[key]; ok {
		return dup(value), nil
	}
	return c.conn.Get([]byte(key), nil)
}

func (c *ldbConn) Put(key string, value []byte) {
	if c.readonly {
		panic("connection is readonly")
	}
	c.batch[key] = dup(value)
}

func (c *ldbConn) Commit() error {
	if c.readonly {
		panic("connection is readonly")
	}

	b := new(leveldb.Batch)
	for key, value := range c.batch {
		b.Put([]byte(key), value)
	}
	if err := c.conn.Write(b, nil); err != nil {
		return err
	}

	c.batch = make(map[string][]byte)
	return nil
}

// ldbAccumulatorStore implements the AccumulatorStore interface over a
// LevelDB database.
type ldbAccumulatorStore struct {
	conn *ldbConn
}

// NewLDBAccumulatorStore opens (or creates) a LevelDB database at `file`,
// recovering it if it was left corrupted.
func NewLDBAccumulatorStore(file string) (AccumulatorStore, error) {
	conn, err := leveldb.OpenFile(file, nil)
	if errors.IsCorrupted(err) {
		conn, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, err
	}
	return &ldbAccumulatorStore{newLDBConn(conn, false)}, nil
}

func (ldb *ldbAccumulatorStore) Clone() AccumulatorStore {
	return &ldbAccumulatorStore{newLDBConn(ldb.conn.conn, true)}
}

func (ldb *ldbAccumulatorStore) Get(name string) ([]byte, error) {
	raw, err := ldb.conn.Get(ldbAccumulatorPrefix + name)
	if err == leveldb.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return raw, nil
}

func (ldb *ldbAccumulatorStore) Put(name string, raw []byte) {
	ldb.conn.Put(ldbAccumulatorPrefix+name, raw)
}

// Reserve is a no-op for LevelDB: the database grows on demand and there is
// no quota to account against.
func (ldb *ldbAccumulatorStore) Reserve(name string, n int) error {
	return nil
}

func (ldb *ldbAccumulatorStore) Commit() error {
	return ldb.conn.Commit()
}
