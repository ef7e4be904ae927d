package hooks

import "sync"

// KeyedSet is an open contribution point keyed by name, used where plugins
// contribute implementations (e.g. schema directives) and there is no core
// default to wrap. Duplicate keys are rejected: registering the same name
// twice panics, matching the other extension registries.
type KeyedSet[V any] struct {
	name string

	mu     sync.Mutex
	locked bool
	items  map[string]V
	order  []string
}

// NewKeyedSet creates a keyed contribution point.
func NewKeyedSet[V any](name string) *KeyedSet[V] {
	return &KeyedSet[V]{name: name, items: make(map[string]V)}
}

func (s *KeyedSet[V]) Name() string { return s.name }

// Register adds a contribution under key. Panics on a duplicate key or once
// the owning registry has been built.
func (s *KeyedSet[V]) Register(key string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		panic("hooks: " + s.name + " locked (register only during init before Build)")
	}
	if _, ok := s.items[key]; ok {
		panic("hooks: " + s.name + ": duplicate " + key)
	}
	s.items[key] = v
	s.order = append(s.order, key)
}

// Get returns the contribution for key.
func (s *KeyedSet[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

// Keys returns all keys in registration order.
func (s *KeyedSet[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// All returns a copy of the key/contribution mapping.
func (s *KeyedSet[V]) All() map[string]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]V, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

func (s *KeyedSet[V]) seal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
}

func (s *KeyedSet[V]) sealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// List is an ordered, append-only contribution point (e.g. schema fragments
// and schema-bindable objects), consumed once at schema-build time.
type List[V any] struct {
	name string

	mu     sync.Mutex
	locked bool
	items  []V
}

// NewList creates an append-only contribution point.
func NewList[V any](name string) *List[V] {
	return &List[V]{name: name}
}

func (l *List[V]) Name() string { return l.name }

// Append adds a contribution. Panics once the owning registry has been built.
func (l *List[V]) Append(v V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		panic("hooks: " + l.name + " locked (register only during init before Build)")
	}
	l.items = append(l.items, v)
}

// All returns the contributions in append order.
func (l *List[V]) All() []V {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]V, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of contributions.
func (l *List[V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List[V]) seal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = true
}

func (l *List[V]) sealed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked
}
