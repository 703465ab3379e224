// Package lmdb is the LMDB engine binding. Unlike bolt, LMDB has a fixed map
// size, so the map-full/grow path is real here, and its reader table can leak
// slots from dead processes, which the reopen policy reclaims via Check.
package lmdb

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/bmatsuo/lmdb-go/lmdb"

	"vstore/internal/logging"
	"vstore/internal/storage/embedded"
)

var llog = logging.For("lmdb")

const (
	initialMapSize = 10 << 30 // 10GB
	growthStep     = 1 << 30  // 1GB
)

// Binding returns the embedded-backend binding for LMDB.
func Binding() embedded.Binding {
	return embedded.Binding{Name: "lmdb", Open: open}
}

type engine struct {
	env  *lmdb.Env
	dbi  lmdb.DBI
	path string

	mu      sync.Mutex // guards mapSize
	mapSize int64
}

func open(dir string, mode embedded.Mode) (embedded.Engine, error) {
	env, err := lmdb.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("creating lmdb env: %w", err)
	}
	if err := env.SetMaxDBs(1); err != nil {
		env.Close()
		return nil, fmt.Errorf("setting max dbs: %w", err)
	}
	if err := env.SetMapSize(initialMapSize); err != nil {
		env.Close()
		return nil, fmt.Errorf("setting map size: %w", err)
	}

	var flags uint = lmdb.NoTLS
	if mode == embedded.ReadOnly {
		flags |= lmdb.Readonly
	}
	if err := env.Open(dir, flags, 0o644); err != nil {
		env.Close()
		return nil, fmt.Errorf("opening lmdb env: %w", err)
	}

	var dbi lmdb.DBI
	err = env.View(func(txn *lmdb.Txn) error {
		var err error
		dbi, err = txn.OpenRoot(0)
		return err
	})
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("opening root database: %w", err)
	}

	return &engine{env: env, dbi: dbi, path: dir, mapSize: initialMapSize}, nil
}

func (e *engine) Begin(write bool) (embedded.Txn, error) {
	var flags uint
	locked := false
	if write {
		// LMDB write transactions are bound to their OS thread.
		runtime.LockOSThread()
		locked = true
	} else {
		flags = lmdb.Readonly
	}

	txn, err := e.env.BeginTxn(nil, flags)
	if err != nil {
		if locked {
			runtime.UnlockOSThread()
		}
		return nil, err
	}
	// Hand out slices pointing into the map instead of copies.
	txn.RawRead = true
	return &txnWrap{txn: txn, dbi: e.dbi, locked: locked}, nil
}

func (e *engine) MapFull(err error) bool {
	return lmdb.IsMapFull(err)
}

// Grow raises the map size by one growth step. LMDB requires no live
// transactions during a resize; the instance layer only calls this after the
// failing transaction has ended.
func (e *engine) Grow() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mapSize += growthStep
	if err := e.env.SetMapSize(e.mapSize); err != nil {
		return fmt.Errorf("growing map to %d: %w", e.mapSize, err)
	}
	llog.Info("map size grown", "path", e.path, "size", e.mapSize)
	return nil
}

// Check clears reader-table slots left behind by dead readers.
func (e *engine) Check() {
	if n, err := e.env.ReaderCheck(); err != nil {
		llog.Error("reader check failed", "path", e.path, "err", err)
	} else if n > 0 {
		llog.Warn("cleared stale readers", "path", e.path, "count", n)
	}
}

func (e *engine) Path() string { return e.path }

type txnWrap struct {
	txn    *lmdb.Txn
	dbi    lmdb.DBI
	locked bool
}

func (t *txnWrap) Get(key []byte) ([]byte, error) {
	v, err := t.txn.Get(t.dbi, key)
	if lmdb.IsNotFound(err) {
		return nil, embedded.ErrNotFound
	}
	return v, err
}

func (t *txnWrap) Put(key, val []byte) error {
	return t.txn.Put(t.dbi, key, val, 0)
}

func (t *txnWrap) Delete(key []byte) (bool, error) {
	err := t.txn.Del(t.dbi, key, nil)
	if lmdb.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *txnWrap) Count() (uint64, error) {
	stat, err := t.txn.Stat(t.dbi)
	if err != nil {
		return 0, err
	}
	return stat.Entries, nil
}

func (t *txnWrap) ForEach(fn func(key, val []byte) error) error {
	cur, err := t.txn.OpenCursor(t.dbi)
	if err != nil {
		return err
	}
	defer cur.Close()
	for {
		k, v, err := cur.Get(nil, nil, lmdb.Next)
		if lmdb.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
}

func (t *txnWrap) Commit() error {
	err := t.txn.Commit()
	if t.locked {
		runtime.UnlockOSThread()
	}
	return err
}

func (t *txnWrap) Rollback() {
	t.txn.Abort()
	if t.locked {
		runtime.UnlockOSThread()
	}
}
