package hooks

import "sync"

// Registry collects the hook instances of a process. Core code and plugins
// add instances and register into them during startup; Build seals every
// instance and the key set, and the built handle is passed explicitly to
// the request-serving layer. Shape is immutable after Build: no keys are
// added or removed, no chains change.
type Registry struct {
	mu        sync.Mutex
	built     bool
	instances map[string]Hook
	order     []string
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]Hook)}
}

// Add registers a hook instance under its name. Panics on a duplicate name
// or after Build.
func (r *Registry) Add(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.built {
		panic("hooks: registry built (add only during startup)")
	}
	name := h.Name()
	if _, ok := r.instances[name]; ok {
		panic("hooks: duplicate hook " + name)
	}
	r.instances[name] = h
	r.order = append(r.order, name)
}

// Build seals every instance and the registry shape. Idempotent; returns
// the registry so callers can build-and-hand-off in one step.
func (r *Registry) Build() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.built {
		return r
	}
	for _, name := range r.order {
		r.instances[name].seal()
	}
	r.built = true
	return r
}

// Built reports whether Build has run.
func (r *Registry) Built() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.built
}

// Get returns the hook instance for an extension-point name.
func (r *Registry) Get(name string) (Hook, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.instances[name]
	return h, ok
}

// Names returns all extension-point names in add order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
