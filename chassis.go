// Package chassis provides the runtime service infrastructure for the
// dashboard: a dependency-injection container with singleton, transient and
// scoped lifetimes, explicit dependency declarations, scope lifecycle, and
// resolve middleware hooks.
package chassis

// Container is the service registry and resolver. One container per
// composition root; it is safe for concurrent use.
type Container interface {
	// Register adds a service factory under a unique key.
	// Fails with ErrAlreadyRegistered if the key is taken.
	Register(key string, factory Factory, opts ...RegisterOption) error

	// RegisterSingleton registers a factory with the Singleton lifetime.
	RegisterSingleton(key string, factory Factory, opts ...RegisterOption) error

	// RegisterTransient registers a factory with the Transient lifetime.
	RegisterTransient(key string, factory Factory, opts ...RegisterOption) error

	// RegisterScoped registers a factory with the Scoped lifetime.
	RegisterScoped(key string, factory Factory, opts ...RegisterOption) error

	// RegisterInstance registers an already-built instance as a Singleton.
	// The instance is cached immediately; no factory ever runs for it.
	RegisterInstance(key string, instance any) error

	// Resolve returns the instance for key, constructing it (and its
	// declared dependencies, depth-first) according to its lifetime.
	// Fails with ErrNotRegistered for unknown keys and ErrScopeInactive
	// for scoped keys outside a scope.
	Resolve(key string) (any, error)

	// Has reports whether a key is registered.
	Has(key string) bool

	// Keys returns all registered keys in registration order.
	Keys() []string

	// Inspect returns diagnostic information about a registration.
	Inspect(key string) ServiceInfo

	// Use appends resolve middleware. Middleware runs in the order added.
	Use(mw Middleware)

	// StartScope pushes a fresh scope frame. Scoped resolutions bind to
	// the newest frame until EndScope pops it.
	StartScope()

	// EndScope pops the newest scope frame and discards its instances.
	// Fails with ErrScopeInactive when no scope is active.
	EndScope() error

	// InScope runs fn inside a scope, guaranteeing EndScope on exit,
	// including panicking exits.
	InScope(fn func() error) error

	// Validate checks the declared dependency graph for missing keys and
	// cycles. Call it once after composition.
	Validate() error

	// Clear empties the registry and all caches and ends every scope.
	Clear()
}

// Factory constructs a service instance. It receives the container so the
// factory can pull the dependencies it declared at registration time.
type Factory func(c Container) (any, error)

// ServiceInfo contains diagnostic information about a registration.
type ServiceInfo struct {
	Key          string
	Lifetime     Lifetime
	Dependencies []string
	Metadata     map[string]string

	// Cached reports whether a singleton instance has been built.
	Cached bool
}

// New creates an empty container.
func New() Container {
	return newContainer()
}
