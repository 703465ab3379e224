// Package bolt is the bbolt engine binding: a single-file memory-mapped
// B+tree. bbolt grows its map automatically, so the grow path is a no-op and
// reopen only resets the read counter.
package bolt

import (
	"fmt"
	"path/filepath"

	bbolt "go.etcd.io/bbolt"

	"vstore/internal/storage/embedded"
)

var bucketName = []byte("kv")

// Binding returns the embedded-backend binding for bbolt.
func Binding() embedded.Binding {
	return embedded.Binding{Name: "bolt", Open: open}
}

type engine struct {
	db   *bbolt.DB
	path string
}

// open creates or opens the environment file inside dir. The mode flag is
// not enforced at the engine level; bbolt's read-only open refuses missing
// files, which would break idempotent first-time construction.
func open(dir string, _ embedded.Mode) (embedded.Engine, error) {
	db, err := bbolt.Open(filepath.Join(dir, "data.db"), 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}
	// The single default table; creating it is idempotent.
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}
	return &engine{db: db, path: dir}, nil
}

func (e *engine) Begin(write bool) (embedded.Txn, error) {
	tx, err := e.db.Begin(write)
	if err != nil {
		return nil, err
	}
	b := tx.Bucket(bucketName)
	if b == nil {
		tx.Rollback()
		return nil, fmt.Errorf("bolt: bucket missing in %s", e.path)
	}
	return &txn{tx: tx, b: b}, nil
}

// MapFull is always false: bbolt remaps as the file grows.
func (e *engine) MapFull(error) bool { return false }

func (e *engine) Grow() error { return nil }

func (e *engine) Check() {}

func (e *engine) Path() string { return e.path }

type txn struct {
	tx *bbolt.Tx
	b  *bbolt.Bucket
}

func (t *txn) Get(key []byte) ([]byte, error) {
	// Borrowed from the mmap; valid until the transaction ends.
	v := t.b.Get(key)
	if v == nil {
		return nil, embedded.ErrNotFound
	}
	return v, nil
}

func (t *txn) Put(key, val []byte) error {
	return t.b.Put(key, val)
}

func (t *txn) Delete(key []byte) (bool, error) {
	if t.b.Get(key) == nil {
		return false, nil
	}
	if err := t.b.Delete(key); err != nil {
		return false, err
	}
	return true, nil
}

func (t *txn) Count() (uint64, error) {
	return uint64(t.b.Stats().KeyN), nil
}

func (t *txn) ForEach(fn func(key, val []byte) error) error {
	return t.b.ForEach(fn)
}

func (t *txn) Commit() error {
	return t.tx.Commit()
}

func (t *txn) Rollback() {
	// Errors on rollback of a read txn are not actionable.
	_ = t.tx.Rollback()
}
