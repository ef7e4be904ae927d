package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"forum.GO/core/registry"
)

// ResolverFunc is the signature for custom resolvers. Args is JSON-decoded map.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Middleware wraps a resolver; schema directives contributed through the
// hook layer are applied in this shape.
type Middleware func(next ResolverFunc) ResolverFunc

type entry struct {
	resolve    ResolverFunc
	directives []string
}

var mu sync.Mutex
var graphqlLocked int32

func getEntries() map[string]entry {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryGraphQL); ok && v != nil {
		return v.(map[string]entry)
	}
	return make(map[string]entry)
}

// Register adds a resolver. Call from init() in custom packages. Name must
// be unique. Optional directive names are resolved by ApplyDirectives at
// startup. Panics if locked.
func Register(name string, resolve ResolverFunc, directives ...string) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		panic("graphql/registry: locked (register only during init before first request)")
	}
	entries := getEntries()
	if _, ok := entries[name]; ok {
		panic("graphql/registry: duplicate " + name)
	}
	entries[name] = entry{resolve: resolve, directives: directives}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// Unregister removes a registration (for tests). Unlocks first.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQL)
	atomic.StoreInt32(&graphqlLocked, 0)
	entries := getEntries()
	delete(entries, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// ApplyDirectives wraps every resolver that declared a directive with the
// matching contributed middleware. Call once at startup, before serving.
// Panics on a directive no plugin contributed.
func ApplyDirectives(dirs map[string]Middleware) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		panic("graphql/registry: locked (apply directives before first request)")
	}
	entries := getEntries()
	for name, e := range entries {
		for _, d := range e.directives {
			wrap, ok := dirs[d]
			if !ok {
				panic("graphql/registry: unknown directive " + d + " on " + name)
			}
			e.resolve = wrap(e.resolve)
		}
		entries[name] = e
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// Resolve calls the resolver for the given field. Locks the graphql registry
// on first call.
func Resolve(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	if atomic.CompareAndSwapInt32(&graphqlLocked, 0, 1) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryGraphQL)
	}
	// Read-only after init — no lock needed
	entries := getEntries()
	e, ok := entries[field]
	if !ok {
		return nil, fmt.Errorf("unknown extension: %s", field)
	}
	return e.resolve(ctx, args)
}

// Names returns all registered names.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	entries := getEntries()
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	return names
}
