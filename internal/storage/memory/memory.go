// Package memory is the in-process backend: one guarded map per namespace.
// It is the reference implementation whose Result tagging every other backend
// must match.
package memory

import (
	"sync"
	"unicode/utf8"

	"vstore/internal/individual"
	"vstore/internal/storage"
)

type namespace struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Store keeps three independently guarded namespace maps. Reads take a shared
// lock, writes an exclusive one.
type Store struct {
	individuals namespace
	tickets     namespace
	az          namespace
}

func New() *Store {
	return &Store{
		individuals: namespace{data: make(map[string][]byte)},
		tickets:     namespace{data: make(map[string][]byte)},
		az:          namespace{data: make(map[string][]byte)},
	}
}

func (s *Store) ns(id storage.ID) *namespace {
	switch id {
	case storage.Tickets:
		return &s.tickets
	case storage.Az:
		return &s.az
	default:
		return &s.individuals
	}
}

func (s *Store) GetIndividual(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	ns := s.ns(id)
	ns.mu.RLock()
	data, ok := ns.data[uri]
	ns.mu.RUnlock()
	if !ok {
		return storage.NotFound[storage.Unit]()
	}
	out.SetRaw(data)
	if err := individual.Parse(out); err != nil {
		return storage.Unprocessable[storage.Unit]()
	}
	return storage.OkUnit()
}

func (s *Store) GetValue(id storage.ID, key string) storage.Result[string] {
	ns := s.ns(id)
	ns.mu.RLock()
	val, ok := ns.data[key]
	ns.mu.RUnlock()
	if !ok {
		return storage.NotFound[string]()
	}
	// Invalid encoding is a data fault, distinct from structural absence.
	if !utf8.Valid(val) {
		return storage.Error[string]("invalid UTF-8 data")
	}
	return storage.Ok(string(val))
}

func (s *Store) GetRawValue(id storage.ID, key string) storage.Result[[]byte] {
	ns := s.ns(id)
	ns.mu.RLock()
	val, ok := ns.data[key]
	ns.mu.RUnlock()
	if !ok {
		return storage.NotFound[[]byte]()
	}
	out := make([]byte, len(val))
	copy(out, val)
	return storage.Ok(out)
}

func (s *Store) PutValue(id storage.ID, key, val string) storage.Result[storage.Unit] {
	return s.PutRawValue(id, key, []byte(val))
}

func (s *Store) PutRawValue(id storage.ID, key string, val []byte) storage.Result[storage.Unit] {
	ns := s.ns(id)
	stored := make([]byte, len(val))
	copy(stored, val)
	ns.mu.Lock()
	ns.data[key] = stored
	ns.mu.Unlock()
	return storage.OkUnit()
}

func (s *Store) RemoveValue(id storage.ID, key string) storage.Result[storage.Unit] {
	ns := s.ns(id)
	ns.mu.Lock()
	_, ok := ns.data[key]
	delete(ns.data, key)
	ns.mu.Unlock()
	if !ok {
		return storage.NotFound[storage.Unit]()
	}
	return storage.OkUnit()
}

func (s *Store) Count(id storage.ID) storage.Result[int] {
	ns := s.ns(id)
	ns.mu.RLock()
	n := len(ns.data)
	ns.mu.RUnlock()
	return storage.Ok(n)
}
