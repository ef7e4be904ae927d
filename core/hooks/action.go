package hooks

import (
	"context"
	"sync"
)

// Listener observes an extension point for side effects only. It cannot
// change what other listeners see or whether they run.
type Listener[A any] func(ctx context.Context, args A) error

// Action is a notification hook: an ordered set of independent listeners.
// Invoke calls every listener with identical arguments, lowest priority
// first, registration order within a priority. The first listener error
// aborts the remaining listeners and is returned to the caller (fail-fast).
type Action[A any] struct {
	name string

	mu      sync.Mutex
	locked  bool
	entries []actionEntry[A]
}

type actionEntry[A any] struct {
	fn       Listener[A]
	priority int
}

// NewAction creates a notification hook for one extension point.
func NewAction[A any](name string) *Action[A] {
	return &Action[A]{name: name}
}

func (a *Action[A]) Name() string { return a.name }

// Register appends a listener. Call during init or plugin load only;
// panics once the owning registry has been built.
func (a *Action[A]) Register(fn Listener[A], opts ...Option) {
	o := buildOptions(opts)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.locked {
		panic("hooks: " + a.name + " locked (register only during init before Build)")
	}
	a.entries = insertByPriority(a.entries, actionEntry[A]{fn: fn, priority: o.priority}, func(e actionEntry[A]) int { return e.priority }, o.priority)
}

// Invoke calls every registered listener in order with the same arguments.
// Returns the first listener error, skipping the rest.
func (a *Action[A]) Invoke(ctx context.Context, args A) error {
	for _, e := range a.snapshot() {
		if err := e.fn(ctx, args); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of registered listeners.
func (a *Action[A]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *Action[A]) snapshot() []actionEntry[A] {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.locked {
		// Sealed entries are immutable — safe to share.
		return a.entries
	}
	out := make([]actionEntry[A], len(a.entries))
	copy(out, a.entries)
	return out
}

func (a *Action[A]) seal() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.locked = true
}

func (a *Action[A]) sealed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.locked
}

// insertByPriority keeps entries ordered by ascending priority, preserving
// registration order among equal priorities (insert after the last entry
// with priority <= p).
func insertByPriority[E any](entries []E, e E, prio func(E) int, p int) []E {
	i := len(entries)
	for i > 0 && prio(entries[i-1]) > p {
		i--
	}
	entries = append(entries, e)
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}
