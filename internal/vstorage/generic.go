package vstorage

import (
	"vstore/internal/individual"
	"vstore/internal/storage"
	"vstore/internal/storage/embedded"
	"vstore/internal/storage/memory"
	"vstore/internal/storage/remote"
)

// Generic is the compile-time dispatch strategy: the same shape as VStorage,
// monomorphized per concrete backend type, with extraction and borrowing of
// the inner backend.
type Generic[S storage.Storage] struct {
	inner S
	ok    bool
}

// NewGeneric wraps a concrete backend.
func NewGeneric[S storage.Storage](inner S) *Generic[S] {
	return &Generic[S]{inner: inner, ok: true}
}

// NoneGeneric returns an empty wrapper; every operation yields NotReady.
func NoneGeneric[S storage.Storage]() *Generic[S] {
	return &Generic[S]{}
}

// Convenience instantiations for the known backends.
type (
	MemoryStorage   = Generic[*memory.Store]
	EmbeddedStorage = Generic[*embedded.Store]
	RemoteStorage   = Generic[*remote.Client]
)

// IsEmpty reports whether the wrapper holds no backend.
func (g *Generic[S]) IsEmpty() bool { return !g.ok }

// Storage borrows the inner backend without removing it.
func (g *Generic[S]) Storage() (S, bool) { return g.inner, g.ok }

// Take extracts the inner backend, leaving the wrapper empty.
func (g *Generic[S]) Take() (S, bool) {
	inner, ok := g.inner, g.ok
	var zero S
	g.inner, g.ok = zero, false
	return inner, ok
}

// GetIndividual resolves uri from the individuals namespace.
func (g *Generic[S]) GetIndividual(uri string, out *individual.Individual) storage.Result[storage.Unit] {
	if !g.ok {
		return storage.NotReady[storage.Unit]()
	}
	return g.inner.GetIndividual(storage.Individuals, uri, out)
}

// GetIndividualFromStorage resolves uri from an explicit namespace.
func (g *Generic[S]) GetIndividualFromStorage(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	if !g.ok {
		return storage.NotReady[storage.Unit]()
	}
	return g.inner.GetIndividual(id, uri, out)
}

func (g *Generic[S]) GetValue(id storage.ID, key string) storage.Result[string] {
	if !g.ok {
		return storage.NotReady[string]()
	}
	return g.inner.GetValue(id, key)
}

func (g *Generic[S]) GetRawValue(id storage.ID, key string) storage.Result[[]byte] {
	if !g.ok {
		return storage.NotReady[[]byte]()
	}
	return g.inner.GetRawValue(id, key)
}

func (g *Generic[S]) PutValue(id storage.ID, key, val string) storage.Result[storage.Unit] {
	if !g.ok {
		return storage.NotReady[storage.Unit]()
	}
	return g.inner.PutValue(id, key, val)
}

func (g *Generic[S]) PutRawValue(id storage.ID, key string, val []byte) storage.Result[storage.Unit] {
	if !g.ok {
		return storage.NotReady[storage.Unit]()
	}
	return g.inner.PutRawValue(id, key, val)
}

func (g *Generic[S]) RemoveValue(id storage.ID, key string) storage.Result[storage.Unit] {
	if !g.ok {
		return storage.NotReady[storage.Unit]()
	}
	return g.inner.RemoveValue(id, key)
}

func (g *Generic[S]) Count(id storage.ID) storage.Result[int] {
	if !g.ok {
		return storage.NotReady[int]()
	}
	return g.inner.Count(id)
}
