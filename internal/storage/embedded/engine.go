// Package embedded implements the memory-mapped database backend: a
// process-wide shared-environment registry, per-namespace instances with
// read-counter/reopen and bounded-retry policies, and a zero-copy read
// transaction API. The byte-level engine bindings live in the bolt and lmdb
// subpackages; everything above them is factored once here.
package embedded

import "errors"

// ErrNotFound is returned by Txn.Get for an absent key.
var ErrNotFound = errors.New("embedded: key not found")

// Engine is a byte-level binding to one open database environment. An Engine
// is shared by every instance opened against its path and lives for the
// process lifetime; it is never closed.
type Engine interface {
	// Begin starts a transaction. Read-only transactions may stay open while
	// borrowed values are in use; write transactions must be committed or
	// rolled back promptly (the engines allow a single active writer).
	Begin(write bool) (Txn, error)
	// MapFull reports whether err means the environment ran out of mapped
	// space and a Grow is worth attempting.
	MapFull(err error) bool
	// Grow raises the environment's size bound.
	Grow() error
	// Check reclaims stale engine resources, e.g. dead reader slots. Called
	// by the reopen policy; engines without such resources make it a no-op.
	Check()
	Path() string
}

// Txn is one transaction against an Engine's single default table.
type Txn interface {
	// Get returns the value for key, or ErrNotFound. For engines that map
	// their pages the returned slice borrows mapped memory and is valid only
	// until the transaction ends.
	Get(key []byte) ([]byte, error)
	Put(key, val []byte) error
	// Delete removes key, reporting whether it was present.
	Delete(key []byte) (bool, error)
	// Count returns the table's entry-count statistic.
	Count() (uint64, error)
	// ForEach visits every pair in key order.
	ForEach(fn func(key, val []byte) error) error
	Commit() error
	Rollback()
}

// Opener creates a new Engine for a namespace directory. Called only by the
// shared registry, under its lock.
type Opener func(dir string, mode Mode) (Engine, error)

// Mode mirrors the construction-time read-only/read-write selection for
// engine bindings that enforce it.
type Mode int

const (
	ReadWrite Mode = iota
	ReadOnly
)

// Binding couples a named engine to its opener. The name doubles as the
// namespace subdirectory prefix, so two bindings never share a path.
type Binding struct {
	Name string
	Open Opener
}
