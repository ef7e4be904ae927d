// Package hooks is the extension-point engine: notification hooks (Action),
// interception chains around a core default (Filter), and plain contribution
// slots (KeyedSet, List). Instances are registered into during init/plugin
// load, sealed once by Registry.Build, and invoked concurrently while serving.
package hooks

// DefaultPriority is used when Register is called without WithPriority.
// Entries with equal priority run in registration order (stable).
const DefaultPriority = 100

// Option configures a single registration.
type Option func(*regOptions)

type regOptions struct {
	priority int
}

// WithPriority sets the ordering key for a listener or interceptor.
// Lower priorities run first.
func WithPriority(p int) Option {
	return func(o *regOptions) { o.priority = p }
}

func buildOptions(opts []Option) regOptions {
	o := regOptions{priority: DefaultPriority}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Hook is implemented by every hook instance the Registry can hold.
type Hook interface {
	// Name identifies the extension point in diagnostics.
	Name() string

	seal()
	sealed() bool
}
