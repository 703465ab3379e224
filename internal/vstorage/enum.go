package vstorage

import (
	"vstore/internal/individual"
	"vstore/internal/storage"
	"vstore/internal/storage/embedded"
	"vstore/internal/storage/memory"
	"vstore/internal/storage/remote"
)

// Kind tags the backend held by an Enum.
type Kind int

const (
	KindNone Kind = iota
	KindMemory
	KindEmbedded
	KindRemote
)

// Enum is the closed-enum dispatch strategy: a tagged union over the known
// backend kinds, dispatched by a single switch with no indirection. Useful on
// hot paths where the set of backends is fixed.
type Enum struct {
	kind Kind
	mem  *memory.Store
	emb  *embedded.Store
	rem  *remote.Client
}

// EnumNone returns the empty variant; every operation yields NotReady.
func EnumNone() *Enum { return &Enum{} }

// EnumMemory returns an enum wrapper over a fresh in-memory backend.
func EnumMemory() *Enum {
	return &Enum{kind: KindMemory, mem: memory.New()}
}

// EnumEmbedded returns an enum wrapper over an embedded backend.
func EnumEmbedded(b embedded.Binding, path string, mode storage.Mode, maxReadCounter uint64) *Enum {
	return &Enum{kind: KindEmbedded, emb: embedded.Open(b, path, mode, maxReadCounter)}
}

// EnumRemote returns an enum wrapper over a remote read-only client.
func EnumRemote(addr string) *Enum {
	return &Enum{kind: KindRemote, rem: remote.New(addr)}
}

// Kind returns the active variant tag.
func (e *Enum) Kind() Kind { return e.kind }

// IsEmpty reports whether the enum holds the empty variant.
func (e *Enum) IsEmpty() bool { return e.kind == KindNone }

func (e *Enum) GetIndividual(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	switch e.kind {
	case KindMemory:
		return e.mem.GetIndividual(id, uri, out)
	case KindEmbedded:
		return e.emb.GetIndividual(id, uri, out)
	case KindRemote:
		return e.rem.GetIndividual(id, uri, out)
	}
	return storage.NotReady[storage.Unit]()
}

func (e *Enum) GetValue(id storage.ID, key string) storage.Result[string] {
	switch e.kind {
	case KindMemory:
		return e.mem.GetValue(id, key)
	case KindEmbedded:
		return e.emb.GetValue(id, key)
	case KindRemote:
		return e.rem.GetValue(id, key)
	}
	return storage.NotReady[string]()
}

func (e *Enum) GetRawValue(id storage.ID, key string) storage.Result[[]byte] {
	switch e.kind {
	case KindMemory:
		return e.mem.GetRawValue(id, key)
	case KindEmbedded:
		return e.emb.GetRawValue(id, key)
	case KindRemote:
		return e.rem.GetRawValue(id, key)
	}
	return storage.NotReady[[]byte]()
}

func (e *Enum) PutValue(id storage.ID, key, val string) storage.Result[storage.Unit] {
	switch e.kind {
	case KindMemory:
		return e.mem.PutValue(id, key, val)
	case KindEmbedded:
		return e.emb.PutValue(id, key, val)
	case KindRemote:
		return e.rem.PutValue(id, key, val)
	}
	return storage.NotReady[storage.Unit]()
}

func (e *Enum) PutRawValue(id storage.ID, key string, val []byte) storage.Result[storage.Unit] {
	switch e.kind {
	case KindMemory:
		return e.mem.PutRawValue(id, key, val)
	case KindEmbedded:
		return e.emb.PutRawValue(id, key, val)
	case KindRemote:
		return e.rem.PutRawValue(id, key, val)
	}
	return storage.NotReady[storage.Unit]()
}

func (e *Enum) RemoveValue(id storage.ID, key string) storage.Result[storage.Unit] {
	switch e.kind {
	case KindMemory:
		return e.mem.RemoveValue(id, key)
	case KindEmbedded:
		return e.emb.RemoveValue(id, key)
	case KindRemote:
		return e.rem.RemoveValue(id, key)
	}
	return storage.NotReady[storage.Unit]()
}

func (e *Enum) Count(id storage.ID) storage.Result[int] {
	switch e.kind {
	case KindMemory:
		return e.mem.Count(id)
	case KindEmbedded:
		return e.emb.Count(id)
	case KindRemote:
		return e.rem.Count(id)
	}
	return storage.NotReady[int]()
}
