// Package storage defines the uniform key/value capability contract shared by
// every backend: the namespace identifiers, the tagged Result type, and the
// seven-operation Storage interface. Backends live in subpackages; dispatch
// wrappers over them live in internal/vstorage.
package storage

import "vstore/internal/individual"

// ID selects one of the fixed logical key spaces within a backend.
type ID int

const (
	Individuals ID = iota
	Tickets
	Az
)

func (id ID) String() string {
	switch id {
	case Individuals:
		return "individuals"
	case Tickets:
		return "tickets"
	case Az:
		return "az"
	}
	return "unknown"
}

// Mode selects read-only or read-write backend construction. Only engine
// bindings that support it enforce read-only at the engine level.
type Mode int

const (
	ReadWrite Mode = iota
	ReadOnly
)

func (m Mode) String() string {
	if m == ReadOnly {
		return "ro"
	}
	return "rw"
}

// Storage is the capability interface every backend implements. All seven
// operations use identical Result tagging; a backend that structurally cannot
// support an operation returns an explicit Error, never panics or silently
// succeeds.
type Storage interface {
	// GetIndividual fetches the stored bytes for uri, sets them on out and
	// parses them. NotFound if absent, UnprocessableEntity if the bytes do
	// not parse, Ok otherwise. Mutates out in place.
	GetIndividual(id ID, uri string, out *individual.Individual) Result[Unit]
	GetValue(id ID, key string) Result[string]
	GetRawValue(id ID, key string) Result[[]byte]
	PutValue(id ID, key, val string) Result[Unit]
	PutRawValue(id ID, key string, val []byte) Result[Unit]
	// RemoveValue deletes key. NotFound if the key was absent.
	RemoveValue(id ID, key string) Result[Unit]
	Count(id ID) Result[int]
}

// Legacy method names, preserved as pure delegations over the current
// contract. They must never diverge in behavior from the operations they
// forward to.

// GetIndividualFromDB is the legacy name of GetIndividual.
//
// Deprecated: use Storage.GetIndividual.
func GetIndividualFromDB(s Storage, id ID, uri string, out *individual.Individual) Result[Unit] {
	return s.GetIndividual(id, uri, out)
}

// GetV returns the value and true, or "" and false for any non-Ok tag.
//
// Deprecated: use Storage.GetValue.
func GetV(s Storage, id ID, key string) (string, bool) {
	r := s.GetValue(id, key)
	return r.Value, r.IsOk()
}

// GetRaw returns the raw value, or nil for any non-Ok tag.
//
// Deprecated: use Storage.GetRawValue.
func GetRaw(s Storage, id ID, key string) []byte {
	return s.GetRawValue(id, key).OrDefault()
}

// PutKV reports whether the put succeeded.
//
// Deprecated: use Storage.PutValue.
func PutKV(s Storage, id ID, key, val string) bool {
	return s.PutValue(id, key, val).IsOk()
}

// PutKVRaw reports whether the raw put succeeded.
//
// Deprecated: use Storage.PutRawValue.
func PutKVRaw(s Storage, id ID, key string, val []byte) bool {
	return s.PutRawValue(id, key, val).IsOk()
}

// Remove reports whether the key existed and was removed.
//
// Deprecated: use Storage.RemoveValue.
func Remove(s Storage, id ID, key string) bool {
	return s.RemoveValue(id, key).IsOk()
}
