package embedded

import (
	"bytes"
	"encoding/binary"
	"time"
	"unicode/utf8"
)

const (
	// DefaultReopenThreshold is the read count after which an instance
	// resets itself when the configuration leaves the threshold unset.
	DefaultReopenThreshold = 1000

	retryAttempts = 2
	retrySleep    = 100 * time.Millisecond
)

// Instance binds one namespace to a shared environment. It owns the read
// counter and reopen threshold; the environment it references outlives it.
type Instance struct {
	eng Engine
	// how many reads before a reopen; 0 means unbounded
	maxReadCounter uint64
	readCounter    uint64
	path           string
}

// NewInstance opens (or reuses) the shared environment for dir and binds a
// fresh instance to it. maxReadCounter of 0 disables the reopen policy.
func NewInstance(dir string, mode Mode, open Opener, maxReadCounter uint64) *Instance {
	return &Instance{
		eng:            openShared(dir, mode, open),
		maxReadCounter: maxReadCounter,
		path:           dir,
	}
}

// Path returns the namespace directory this instance is bound to.
func (in *Instance) Path() string { return in.path }

// Reopen resets the read counter and lets the engine reclaim stale
// resources. The environment itself stays open and shared.
func (in *Instance) Reopen() {
	in.readCounter = 0
	in.eng.Check()
	elog.Info("reset read counter", "path", in.path)
}

// getRaw looks key up in a short-lived read transaction, retrying once after
// a short sleep on transaction failure. It returns an owned copy; the
// zero-copy path is BeginRead. A miss or decode-level failure is a plain
// (nil, false) — this path logs but never blocks indefinitely.
func (in *Instance) getRaw(key string) ([]byte, bool) {
	for it := 0; it < retryAttempts; it++ {
		in.readCounter++
		if in.maxReadCounter > 0 && in.readCounter > in.maxReadCounter {
			elog.Warn("max read counter reached", "path", in.path, "key", key)
			in.Reopen()
		}

		txn, err := in.eng.Begin(false)
		if err != nil {
			elog.Error("failed to begin read transaction", "path", in.path, "key", key, "err", err)
			time.Sleep(retrySleep)
			continue
		}

		val, err := txn.Get([]byte(key))
		switch {
		case err == nil:
			out := bytes.Clone(val)
			txn.Rollback()
			return out, true
		case err == ErrNotFound:
			txn.Rollback()
			return nil, false
		default:
			elog.Error("get failed", "path", in.path, "key", key, "err", err)
			txn.Rollback()
			return nil, false
		}
	}
	return nil, false
}

// GetRaw returns the stored bytes for key, or false on absence or failure.
func (in *Instance) GetRaw(key string) ([]byte, bool) {
	return in.getRaw(key)
}

// GetString returns the stored bytes decoded as UTF-8 text. Decode failure
// reads as a miss.
func (in *Instance) GetString(key string) (string, bool) {
	val, ok := in.getRaw(key)
	if !ok {
		return "", false
	}
	return decodeString(val)
}

// GetUint64 decodes an 8-byte little-endian value.
func (in *Instance) GetUint64(key string) (uint64, bool) {
	val, ok := in.getRaw(key)
	if !ok {
		return 0, false
	}
	return decodeUint64(val)
}

// GetInt64 decodes an 8-byte little-endian value.
func (in *Instance) GetInt64(key string) (int64, bool) {
	v, ok := in.GetUint64(key)
	return int64(v), ok
}

// GetUint32 decodes a 4-byte little-endian value.
func (in *Instance) GetUint32(key string) (uint32, bool) {
	val, ok := in.getRaw(key)
	if !ok {
		return 0, false
	}
	return decodeUint32(val)
}

// GetInt32 decodes a 4-byte little-endian value.
func (in *Instance) GetInt32(key string) (int32, bool) {
	v, ok := in.GetUint32(key)
	return int32(v), ok
}

// Count returns the table's entry count, retrying once on transient failure
// and reporting zero after exhaustion.
func (in *Instance) Count() int {
	for it := 0; it < retryAttempts; it++ {
		txn, err := in.eng.Begin(false)
		if err != nil {
			elog.Error("failed to begin transaction for count", "path", in.path, "err", err)
			time.Sleep(retrySleep)
			continue
		}
		n, err := txn.Count()
		txn.Rollback()
		if err != nil {
			elog.Error("failed to get count", "path", in.path, "err", err)
			time.Sleep(retrySleep)
			continue
		}
		return int(n)
	}
	return 0
}

// Put stores key/val, overwriting any existing value. On a map-full commit
// the environment is grown and the whole operation retried exactly once.
func (in *Instance) Put(key string, val []byte) bool {
	return in.put(key, val, false)
}

func (in *Instance) put(key string, val []byte, retried bool) bool {
	txn, err := in.eng.Begin(true)
	if err != nil {
		elog.Error("failed to begin write transaction", "path", in.path, "key", key, "err", err)
		return false
	}

	if err := txn.Put([]byte(key), val); err != nil {
		txn.Rollback()
		if in.growAndRetry(err, retried, key) {
			return in.put(key, val, true)
		}
		elog.Error("failed to put", "path", in.path, "key", key, "err", err)
		return false
	}

	if err := txn.Commit(); err != nil {
		if in.growAndRetry(err, retried, key) {
			return in.put(key, val, true)
		}
		elog.Error("failed to commit put", "path", in.path, "key", key, "err", err)
		return false
	}
	return true
}

// Remove deletes key. A false return with no logged error means the key was
// absent ("not removed"), which is not a fault.
func (in *Instance) Remove(key string) bool {
	return in.remove(key, false)
}

func (in *Instance) remove(key string, retried bool) bool {
	txn, err := in.eng.Begin(true)
	if err != nil {
		elog.Error("failed to begin write transaction", "path", in.path, "key", key, "err", err)
		return false
	}

	found, err := txn.Delete([]byte(key))
	if err != nil {
		txn.Rollback()
		if in.growAndRetry(err, retried, key) {
			return in.remove(key, true)
		}
		elog.Error("failed to remove", "path", in.path, "key", key, "err", err)
		return false
	}
	if !found {
		txn.Rollback()
		return false
	}

	if err := txn.Commit(); err != nil {
		if in.growAndRetry(err, retried, key) {
			return in.remove(key, true)
		}
		elog.Error("failed to commit removal", "path", in.path, "key", key, "err", err)
		return false
	}
	return true
}

func (in *Instance) growAndRetry(err error, retried bool, key string) bool {
	if retried || !in.eng.MapFull(err) {
		return false
	}
	elog.Warn("environment full, growing", "path", in.path, "key", key)
	if gerr := in.eng.Grow(); gerr != nil {
		elog.Error("failed to grow environment", "path", in.path, "err", gerr)
		return false
	}
	return true
}

// Keys returns a snapshot of every key in the namespace, in engine order.
func (in *Instance) Keys() []string {
	txn, err := in.eng.Begin(false)
	if err != nil {
		elog.Error("failed to begin transaction for keys", "path", in.path, "err", err)
		return nil
	}
	defer txn.Rollback()

	var keys []string
	err = txn.ForEach(func(key, _ []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		elog.Error("failed to iterate keys", "path", in.path, "err", err)
		return nil
	}
	return keys
}

func decodeString(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

func decodeUint64(b []byte) (uint64, bool) {
	if len(b) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

func decodeUint32(b []byte) (uint32, bool) {
	if len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}
