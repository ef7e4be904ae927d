package hooks

import (
	"sync"

	"gorm.io/gorm"

	"forum.GO/core/registry"
)

var mu sync.Mutex

// PluginFunc registers extension code on the hook set. Call RegisterPlugin
// from init() in custom packages; Load applies every plugin before sealing.
type PluginFunc func(h *Hooks)

func getPlugins() []PluginFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryHooks); ok && v != nil {
		return v.([]PluginFunc)
	}
	return nil
}

// RegisterPlugin registers a hook plugin. Call from init() in custom
// packages. Panics once Load has run.
func RegisterPlugin(fn PluginFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryHooks) {
		panic("hooks/registry: plugins locked (register only during init before Load)")
	}
	list := getPlugins()
	list = append(list, fn)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryHooks, list)
}

// UnregisterPlugins drops all plugin funcs (for tests). Unlocks first.
func UnregisterPlugins() {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryHooks)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryHooks, []PluginFunc(nil))
}

// Load builds the hook set: defaults wired in, every registered plugin
// applied, then sealed. Locks the plugin registry. The returned handle is
// passed explicitly to the serving layer.
func Load(db *gorm.DB) *Hooks {
	h := New(db)
	for _, fn := range getPlugins() {
		fn(h)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryHooks)
	return h.Build()
}
