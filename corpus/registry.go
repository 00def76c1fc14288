package corpus

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a Source from configuration.
type Factory func(cfg Config) (Source, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Factory)
)

// RegisterDriver makes a driver available under name. It panics on a duplicate name.
func RegisterDriver(name string, factory Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()

	name = strings.ToLower(name)
	if factory == nil {
		panic("corpus: RegisterDriver factory is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("corpus: RegisterDriver called twice for driver " + name)
	}
	drivers[name] = factory
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a Source using the driver named in cfg.
func New(cfg Config) (Source, error) {
	name := strings.ToLower(cfg.Driver)
	if name == "" {
		name = "local"
	}

	driversMu.RLock()
	factory, ok := drivers[name]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrInvalidDriver, name, strings.Join(Drivers(), ", "))
	}
	return factory(cfg)
}
