// Package vstorage exposes the three dispatch strategies over the storage
// contract — dynamic (interface-valued), generic (monomorphized per backend
// type) and closed-enum (static switch) — plus the config/builder/provider
// entry points that construct backends. The three strategies are behaviorally
// indistinguishable for identical operation sequences; an empty wrapper of
// any strategy answers NotReady to every operation.
package vstorage

import (
	"vstore/internal/individual"
	"vstore/internal/storage"
)

// VStorage is the dynamic dispatch strategy: an optional interface-valued
// backend. Nil means not ready.
type VStorage struct {
	inner storage.Storage
}

// None returns an uninitialized wrapper; every operation yields NotReady.
func None() *VStorage { return &VStorage{} }

// New wraps a concrete backend.
func New(inner storage.Storage) *VStorage { return &VStorage{inner: inner} }

// FromConfig builds the configured backend and wraps it.
func FromConfig(cfg Config) (*VStorage, error) {
	st, err := NewStorage(cfg)
	if err != nil {
		return nil, err
	}
	return New(st), nil
}

// IsEmpty reports whether the wrapper holds no backend.
func (v *VStorage) IsEmpty() bool { return v.inner == nil }

// GetIndividual resolves uri from the individuals namespace.
func (v *VStorage) GetIndividual(uri string, out *individual.Individual) storage.Result[storage.Unit] {
	if v.inner == nil {
		return storage.NotReady[storage.Unit]()
	}
	return v.inner.GetIndividual(storage.Individuals, uri, out)
}

// GetIndividualFromStorage resolves uri from an explicit namespace.
func (v *VStorage) GetIndividualFromStorage(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	if v.inner == nil {
		return storage.NotReady[storage.Unit]()
	}
	return v.inner.GetIndividual(id, uri, out)
}

func (v *VStorage) GetValue(id storage.ID, key string) storage.Result[string] {
	if v.inner == nil {
		return storage.NotReady[string]()
	}
	return v.inner.GetValue(id, key)
}

func (v *VStorage) GetRawValue(id storage.ID, key string) storage.Result[[]byte] {
	if v.inner == nil {
		return storage.NotReady[[]byte]()
	}
	return v.inner.GetRawValue(id, key)
}

func (v *VStorage) PutValue(id storage.ID, key, val string) storage.Result[storage.Unit] {
	if v.inner == nil {
		return storage.NotReady[storage.Unit]()
	}
	return v.inner.PutValue(id, key, val)
}

func (v *VStorage) PutRawValue(id storage.ID, key string, val []byte) storage.Result[storage.Unit] {
	if v.inner == nil {
		return storage.NotReady[storage.Unit]()
	}
	return v.inner.PutRawValue(id, key, val)
}

func (v *VStorage) RemoveValue(id storage.ID, key string) storage.Result[storage.Unit] {
	if v.inner == nil {
		return storage.NotReady[storage.Unit]()
	}
	return v.inner.RemoveValue(id, key)
}

func (v *VStorage) Count(id storage.ID) storage.Result[int] {
	if v.inner == nil {
		return storage.NotReady[int]()
	}
	return v.inner.Count(id)
}

// Legacy names, pure delegations.

// GetIndividualFromDB is the legacy name of GetIndividualFromStorage.
//
// Deprecated: use GetIndividualFromStorage.
func (v *VStorage) GetIndividualFromDB(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	return v.GetIndividualFromStorage(id, uri, out)
}

// GetV returns the value and true, or "" and false for any non-Ok tag.
//
// Deprecated: use GetValue.
func (v *VStorage) GetV(id storage.ID, key string) (string, bool) {
	r := v.GetValue(id, key)
	return r.Value, r.IsOk()
}

// GetRaw returns the raw value, or nil for any non-Ok tag.
//
// Deprecated: use GetRawValue.
func (v *VStorage) GetRaw(id storage.ID, key string) []byte {
	return v.GetRawValue(id, key).OrDefault()
}

// PutKV reports whether the put succeeded.
//
// Deprecated: use PutValue.
func (v *VStorage) PutKV(id storage.ID, key, val string) bool {
	return v.PutValue(id, key, val).IsOk()
}

// PutKVRaw reports whether the raw put succeeded.
//
// Deprecated: use PutRawValue.
func (v *VStorage) PutKVRaw(id storage.ID, key string, val []byte) bool {
	return v.PutRawValue(id, key, val).IsOk()
}

// Remove reports whether the key existed and was removed.
//
// Deprecated: use RemoveValue.
func (v *VStorage) Remove(id storage.ID, key string) bool {
	return v.RemoveValue(id, key).IsOk()
}
