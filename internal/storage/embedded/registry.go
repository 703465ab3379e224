package embedded

import (
	"os"
	"sync"
	"time"

	"vstore/internal/logging"
)

var elog = logging.For("embedded")

// Process-wide registry of shared environments by path. Multiple instances
// opened against the same path must share one environment; the engines do not
// tolerate a second open of the same files within a process. Entries are
// never evicted: a process works against a fixed set of paths and the
// environments live until it exits.
var (
	registryMu sync.Mutex
	registry   = make(map[string]Engine)
)

// openShared returns the environment for dir, creating it on first use.
// Creation is serialized by the registry lock and retries indefinitely with a
// back-off sleep: there is no degraded mode for an unopenable environment, so
// this never returns an unopened engine.
func openShared(dir string, mode Mode, open Opener) Engine {
	registryMu.Lock()
	defer registryMu.Unlock()

	if eng, ok := registry[dir]; ok {
		return eng
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		elog.Error("failed to create directory", "path", dir, "err", err)
	}

	for {
		eng, err := open(dir, mode)
		if err == nil {
			registry[dir] = eng
			return eng
		}
		elog.Error("failed to open environment, retrying", "path", dir, "err", err)
		time.Sleep(time.Second)
	}
}
