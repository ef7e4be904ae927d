package hooks

import (
	"context"
	"sync"
)

// Next invokes the rest of an interception chain: the remaining interceptors
// followed by the terminal default. Each call forwards whatever arguments it
// is given, so an interceptor can transform them before passing them on.
type Next[A, R any] func(ctx context.Context, args A) (R, error)

// Interceptor wraps one link of an interception chain. It may call next zero
// times (short-circuit), once (pass through, optionally transforming the
// arguments or the result), or more than once; an error return aborts the
// chain and propagates unchanged to the Invoke caller.
type Interceptor[A, R any] func(ctx context.Context, args A, next Next[A, R]) (R, error)

// Filter is an interception hook: an ordered interceptor chain wrapped
// around exactly one terminal default supplied at construction. The default
// is always the tail of the chain and is never removed.
type Filter[A, R any] struct {
	name string
	def  Next[A, R]

	mu      sync.Mutex
	locked  bool
	entries []filterEntry[A, R]
}

type filterEntry[A, R any] struct {
	fn       Interceptor[A, R]
	priority int
}

// NewFilter creates an interception hook for one extension point. The
// default is the core's un-extended behavior. Panics on a nil default.
func NewFilter[A, R any](name string, def Next[A, R]) *Filter[A, R] {
	if def == nil {
		panic("hooks: " + name + " needs a default")
	}
	return &Filter[A, R]{name: name, def: def}
}

func (f *Filter[A, R]) Name() string { return f.name }

// Register inserts an interceptor ahead of the default, ordered by ascending
// priority then registration order. Call during init or plugin load only;
// panics once the owning registry has been built.
func (f *Filter[A, R]) Register(fn Interceptor[A, R], opts ...Option) {
	o := buildOptions(opts)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked {
		panic("hooks: " + f.name + " locked (register only during init before Build)")
	}
	f.entries = insertByPriority(f.entries, filterEntry[A, R]{fn: fn, priority: o.priority}, func(e filterEntry[A, R]) int { return e.priority }, o.priority)
}

// Invoke runs the chain: first interceptor, then each subsequent one through
// its next handle, default last. The result is whatever the outermost link
// returns. With no interceptors registered this is exactly the default.
func (f *Filter[A, R]) Invoke(ctx context.Context, args A) (R, error) {
	chain := f.snapshot()
	// Chain-walking state is request-local: each next handle targets a fixed
	// index, so calling it twice replays the same tail.
	var at func(i int) Next[A, R]
	at = func(i int) Next[A, R] {
		return func(ctx context.Context, args A) (R, error) {
			if i >= len(chain) {
				return f.def(ctx, args)
			}
			return chain[i].fn(ctx, args, at(i+1))
		}
	}
	return at(0)(ctx, args)
}

// Len returns the number of registered interceptors (the default excluded).
func (f *Filter[A, R]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *Filter[A, R]) snapshot() []filterEntry[A, R] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked {
		return f.entries
	}
	out := make([]filterEntry[A, R], len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *Filter[A, R]) seal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = true
}

func (f *Filter[A, R]) sealed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locked
}
