package vstorage

import (
	"fmt"

	"vstore/internal/logging"
	"vstore/internal/storage"
	"vstore/internal/storage/embedded"
	"vstore/internal/storage/embedded/bolt"
	"vstore/internal/storage/embedded/lmdb"
	"vstore/internal/storage/memory"
	"vstore/internal/storage/remote"
)

var flog = logging.For("vstorage")

// Backend names accepted by Config.
const (
	BackendMemory   = "memory"
	BackendEmbedded = "embedded"
	BackendRemote   = "remote"
)

// Engine names accepted by Config for the embedded backend.
const (
	EngineBolt = "bolt"
	EngineLMDB = "lmdb"
)

// Config selects a backend and its construction parameters.
type Config struct {
	Backend string
	// Embedded backend only.
	Engine string
	Path   string
	Mode   storage.Mode
	// Reads before an instance reopen; 0 applies the default threshold.
	ReopenThreshold uint64
	// Remote backend only.
	Address string
}

// Validate rejects configs the factory could not construct from.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendEmbedded:
		if c.Path == "" {
			return fmt.Errorf("embedded backend requires a path")
		}
		if _, err := binding(c.Engine); err != nil {
			return err
		}
		return nil
	case BackendRemote:
		if c.Address == "" {
			return fmt.Errorf("remote backend requires an address")
		}
		return nil
	case "":
		return fmt.Errorf("no backend specified")
	}
	return fmt.Errorf("unknown backend %q", c.Backend)
}

func binding(engine string) (embedded.Binding, error) {
	switch engine {
	case EngineBolt, "":
		return bolt.Binding(), nil
	case EngineLMDB:
		return lmdb.Binding(), nil
	}
	return embedded.Binding{}, fmt.Errorf("unknown embedded engine %q", engine)
}

// NewStorage is the factory: it turns a Config into a concrete backend
// behind the capability interface.
func NewStorage(c Config) (storage.Storage, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Backend {
	case BackendMemory:
		return Memory(), nil
	case BackendEmbedded:
		b, _ := binding(c.Engine)
		threshold := c.ReopenThreshold
		if threshold == 0 {
			threshold = embedded.DefaultReopenThreshold
		}
		return Embedded(b, c.Path, c.Mode, threshold), nil
	case BackendRemote:
		return Remote(c.Address), nil
	}
	return nil, fmt.Errorf("unknown backend %q", c.Backend)
}

// Builder accumulates a Config fluently and fails at Build when nothing was
// selected.
type Builder struct {
	cfg *Config
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Memory() *Builder {
	b.cfg = &Config{Backend: BackendMemory}
	return b
}

func (b *Builder) Embedded(engine, path string, mode storage.Mode, reopenThreshold uint64) *Builder {
	b.cfg = &Config{
		Backend:         BackendEmbedded,
		Engine:          engine,
		Path:            path,
		Mode:            mode,
		ReopenThreshold: reopenThreshold,
	}
	return b
}

func (b *Builder) Remote(addr string) *Builder {
	b.cfg = &Config{Backend: BackendRemote, Address: addr}
	return b
}

func (b *Builder) Build() (storage.Storage, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("no storage type specified")
	}
	return NewStorage(*b.cfg)
}

// Provider-style constructors: direct, no Config round trip. The generic
// flavors keep the concrete type; these keep the interface.

// Memory returns a fresh in-memory backend.
func Memory() storage.Storage {
	flog.Info("creating in-memory storage")
	return memory.New()
}

// Embedded opens an embedded backend. maxReadCounter of 0 leaves the reopen
// policy unbounded on this path.
func Embedded(b embedded.Binding, path string, mode storage.Mode, maxReadCounter uint64) storage.Storage {
	flog.Info("opening embedded storage", "engine", b.Name, "path", path, "mode", mode.String())
	return embedded.Open(b, path, mode, maxReadCounter)
}

// Remote returns a remote read-only client backend.
func Remote(addr string) storage.Storage {
	flog.Info("creating remote storage client", "addr", addr)
	return remote.New(addr)
}

// MemoryGeneric returns a generic wrapper over a fresh in-memory backend.
func MemoryGeneric() *MemoryStorage {
	return NewGeneric(memory.New())
}

// EmbeddedGeneric returns a generic wrapper over an embedded backend.
func EmbeddedGeneric(b embedded.Binding, path string, mode storage.Mode, maxReadCounter uint64) *EmbeddedStorage {
	return NewGeneric(embedded.Open(b, path, mode, maxReadCounter))
}

// RemoteGeneric returns a generic wrapper over a remote client.
func RemoteGeneric(addr string) *RemoteStorage {
	return NewGeneric(remote.New(addr))
}
