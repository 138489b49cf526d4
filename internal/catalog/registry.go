package catalog

import (
	"sync"
)

// The process-wide registry is built once on first use and shared by
// reference afterwards. Matches never mutate definitions, so no copy is
// taken.
var (
	registryOnce sync.Once
	registry     *Catalog
	registryErr  error
	registryPath string
	registryMu   sync.Mutex
)

// SetRegistryPath configures where the shared registry loads from. It must
// be called before the first Shared call; later calls are ignored.
func SetRegistryPath(path string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registryPath == "" {
		registryPath = path
	}
}

// Shared returns the process-wide catalog, loading it on first use from
// the configured path.
func Shared() (*Catalog, error) {
	registryOnce.Do(func() {
		registryMu.Lock()
		path := registryPath
		registryMu.Unlock()
		if path == "" {
			path = "data/cards.yaml"
		}
		registry, registryErr = Load(path)
	})
	return registry, registryErr
}
