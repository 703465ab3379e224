package embedded

import (
	"path/filepath"

	"vstore/internal/individual"
	"vstore/internal/storage"
)

// Store is the embedded-database backend: one per-namespace instance for
// each of the three key spaces, all sharing environments through the
// process-wide registry. The engine binding decides the on-disk format; the
// namespace subdirectories are fixed as <engine>-individuals,
// <engine>-tickets and acl-indexes under the base path.
type Store struct {
	individuals *Instance
	tickets     *Instance
	az          *Instance
}

// Open constructs a backend rooted at basePath using the given engine
// binding. maxReadCounter of 0 applies DefaultReopenThreshold semantics at
// the caller's discretion; pass the configured value through unchanged.
func Open(b Binding, basePath string, mode storage.Mode, maxReadCounter uint64) *Store {
	emode := ReadWrite
	if mode == storage.ReadOnly {
		emode = ReadOnly
	}
	return &Store{
		individuals: NewInstance(filepath.Join(basePath, b.Name+"-individuals"), emode, b.Open, maxReadCounter),
		tickets:     NewInstance(filepath.Join(basePath, b.Name+"-tickets"), emode, b.Open, maxReadCounter),
		az:          NewInstance(filepath.Join(basePath, "acl-indexes"), emode, b.Open, maxReadCounter),
	}
}

// Instance returns the per-namespace instance, e.g. for the zero-copy read
// path or key iteration.
func (s *Store) Instance(id storage.ID) *Instance {
	switch id {
	case storage.Tickets:
		return s.tickets
	case storage.Az:
		return s.az
	default:
		return s.individuals
	}
}

// Reopen resets the read counter of one namespace instance.
func (s *Store) Reopen(id storage.ID) {
	in := s.Instance(id)
	in.Reopen()
	elog.Info("instance reopened", "path", in.path, "storage", id.String())
}

func (s *Store) GetIndividual(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	in := s.Instance(id)
	val, ok := in.getRaw(uri)
	if !ok {
		return storage.NotFound[storage.Unit]()
	}
	out.SetRaw(val)
	if err := individual.Parse(out); err != nil {
		elog.Error("failed to parse individual", "path", in.path, "len", out.RawLen(), "uri", uri)
		return storage.Unprocessable[storage.Unit]()
	}
	return storage.OkUnit()
}

func (s *Store) GetValue(id storage.ID, key string) storage.Result[string] {
	val, ok := s.Instance(id).GetString(key)
	if !ok {
		return storage.NotFound[string]()
	}
	return storage.Ok(val)
}

func (s *Store) GetRawValue(id storage.ID, key string) storage.Result[[]byte] {
	val, ok := s.Instance(id).GetRaw(key)
	if !ok {
		return storage.NotFound[[]byte]()
	}
	return storage.Ok(val)
}

func (s *Store) PutValue(id storage.ID, key, val string) storage.Result[storage.Unit] {
	if !s.Instance(id).Put(key, []byte(val)) {
		return storage.Error[storage.Unit]("failed to put value")
	}
	return storage.OkUnit()
}

func (s *Store) PutRawValue(id storage.ID, key string, val []byte) storage.Result[storage.Unit] {
	if !s.Instance(id).Put(key, val) {
		return storage.Error[storage.Unit]("failed to put raw value")
	}
	return storage.OkUnit()
}

func (s *Store) RemoveValue(id storage.ID, key string) storage.Result[storage.Unit] {
	if !s.Instance(id).Remove(key) {
		return storage.NotFound[storage.Unit]()
	}
	return storage.OkUnit()
}

func (s *Store) Count(id storage.ID) storage.Result[int] {
	return storage.Ok(s.Instance(id).Count())
}
