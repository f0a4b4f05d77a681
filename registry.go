package dbenum

import (
	"fmt"
	"sync"
)

// A Registry maps the name of each Definition to the Definition.
//
// Register Definitions while the application starts up, then call Freeze.
// Afterwards, the Registry is read-only and safe to share between goroutines.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*Definition
	pg     map[string]string
	order  []string
	frozen bool
}

// NewRegistry constructs a *Registry holding defs.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := newRegistry()
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func newRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition), pg: make(map[string]string)}
}

// Register adds def under def.Name().
//
// Register returns ErrExists if a Definition with the same name is present,
// or with a name mapping onto the same PostgresName, e.g., OrderStatus and order_status.
// Register returns ErrBadConfig if def is nil or the Registry is frozen.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("%w: cannot register nil *Definition", ErrBadConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: registry is frozen, cannot register %s", ErrBadConfig, def.Name())
	}

	if _, ok := r.defs[def.Name()]; ok {
		return fmt.Errorf("%w: enum %s is already registered", ErrExists, def.Name())
	}

	if other, ok := r.pg[def.PostgresName()]; ok {
		return fmt.Errorf("%w: enums %s and %s share the Postgres type %s", ErrExists, other, def.Name(), def.PostgresName())
	}

	r.defs[def.Name()] = def
	r.pg[def.PostgresName()] = def.Name()
	r.order = append(r.order, def.Name())

	return nil
}

// Freeze stops the Registry from accepting any more Definitions.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen asserts whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup retrieves the Definition registered under name,
// returning ErrNotExist if there is none.
func (r *Registry) Lookup(name string) (*Definition, error) {
	r.mu.RLock()
	def, ok := r.defs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: enum %s is not registered", ErrNotExist, name)
	}

	return def, nil
}

// Names lists the registered names in the order they were registered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions lists the registered Definitions in the order they were registered.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, len(r.order))
	for i, name := range r.order {
		out[i] = r.defs[name]
	}

	return out
}

var defaultRegistry = newRegistry()

// Default returns the process-wide Registry used by Register, MustRegister and Lookup.
func Default() *Registry { return defaultRegistry }

// Register adds def to the default Registry.
func Register(def *Definition) error { return defaultRegistry.Register(def) }

// MustRegister adds def to the default Registry, panicking on failure,
// and returns def so it can initialize a package-level variable:
//
//	var statusDef = dbenum.MustRegister(dbenum.MustDefine("Status", ...))
func MustRegister(def *Definition) *Definition {
	if err := defaultRegistry.Register(def); err != nil {
		panic(err)
	}

	return def
}

// Lookup retrieves the Definition registered under name in the default Registry.
func Lookup(name string) (*Definition, error) { return defaultRegistry.Lookup(name) }
