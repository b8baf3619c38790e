package chassis

import (
	"fmt"
	"sync"
)

// descriptor holds one registration. Created at Register and immutable
// afterwards, except for the singleton cache fields guarded by mu.
type descriptor struct {
	key      string
	factory  Factory
	lifetime Lifetime
	deps     []string
	metadata map[string]string

	mu       sync.RWMutex
	instance any
	built    bool
}

// containerImpl implements Container.
type containerImpl struct {
	mu         sync.RWMutex
	registry   map[string]*descriptor
	order      []string
	scopes     []*scopeFrame
	middleware *middlewareChain
}

func newContainer() *containerImpl {
	return &containerImpl{
		registry:   make(map[string]*descriptor),
		middleware: newMiddlewareChain(),
	}
}

// Register adds a service factory to the container.
func (c *containerImpl) Register(key string, factory Factory, opts ...RegisterOption) error {
	if key == "" {
		return fmt.Errorf("service key cannot be empty")
	}

	if factory == nil {
		return ErrInvalidFactory
	}

	rc := applyOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.registry[key]; exists {
		return errAlreadyRegistered(key)
	}

	c.registry[key] = &descriptor{
		key:      key,
		factory:  factory,
		lifetime: rc.lifetime,
		deps:     rc.deps,
		metadata: rc.metadata,
	}
	c.order = append(c.order, key)

	return nil
}

// RegisterSingleton registers a factory with the Singleton lifetime.
func (c *containerImpl) RegisterSingleton(key string, factory Factory, opts ...RegisterOption) error {
	return c.Register(key, factory, append([]RegisterOption{AsSingleton()}, opts...)...)
}

// RegisterTransient registers a factory with the Transient lifetime.
func (c *containerImpl) RegisterTransient(key string, factory Factory, opts ...RegisterOption) error {
	return c.Register(key, factory, append([]RegisterOption{AsTransient()}, opts...)...)
}

// RegisterScoped registers a factory with the Scoped lifetime.
func (c *containerImpl) RegisterScoped(key string, factory Factory, opts ...RegisterOption) error {
	return c.Register(key, factory, append([]RegisterOption{AsScoped()}, opts...)...)
}

// RegisterInstance registers an existing instance as a pre-built singleton.
// The instance is available before any Resolve call.
func (c *containerImpl) RegisterInstance(key string, instance any) error {
	if key == "" {
		return fmt.Errorf("service key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.registry[key]; exists {
		return errAlreadyRegistered(key)
	}

	c.registry[key] = &descriptor{
		key:      key,
		factory:  func(Container) (any, error) { return instance, nil },
		lifetime: Singleton,
		instance: instance,
		built:    true,
	}
	c.order = append(c.order, key)

	return nil
}

// Resolve returns a service by key.
func (c *containerImpl) Resolve(key string) (any, error) {
	if err := c.middleware.beforeResolve(key); err != nil {
		return nil, err
	}

	instance, err := c.resolveKey(key, nil)
	c.middleware.afterResolve(key, instance, err)

	return instance, err
}

// resolveKey resolves a key while tracking the resolution path so declared
// dependency cycles fail with an explicit error instead of recursing.
func (c *containerImpl) resolveKey(key string, path []string) (any, error) {
	for _, seen := range path {
		if seen == key {
			return nil, errCycle(append(path, key))
		}
	}

	c.mu.RLock()
	d, exists := c.registry[key]
	c.mu.RUnlock()

	if !exists {
		return nil, errNotRegistered(key)
	}

	switch d.lifetime {
	case Singleton:
		return c.resolveSingleton(d, path)
	case Scoped:
		return c.resolveScoped(d, path)
	default:
		return c.build(d, path)
	}
}

// build resolves the declared dependencies depth-first, then invokes the
// factory. Used directly for transients and by the caching paths.
func (c *containerImpl) build(d *descriptor, path []string) (any, error) {
	path = append(path, d.key)

	for _, dep := range d.deps {
		if _, err := c.resolveKey(dep, path); err != nil {
			return nil, err
		}
	}

	instance, err := d.factory(c)
	if err != nil {
		return nil, factoryError(d.key, err)
	}

	return instance, nil
}

// resolveSingleton constructs the instance at most once. Racing first
// resolvers serialize on the descriptor lock; the loser observes the
// winner's cached instance.
func (c *containerImpl) resolveSingleton(d *descriptor, path []string) (any, error) {
	d.mu.RLock()

	if d.built {
		instance := d.instance
		d.mu.RUnlock()

		return instance, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-check after acquiring the write lock.
	if d.built {
		return d.instance, nil
	}

	instance, err := c.build(d, path)
	if err != nil {
		return nil, err
	}

	d.instance = instance
	d.built = true

	return instance, nil
}

// resolveScoped constructs the instance at most once per scope frame.
func (c *containerImpl) resolveScoped(d *descriptor, path []string) (any, error) {
	frame := c.activeFrame()
	if frame == nil {
		return nil, errScopeInactive(d.key)
	}

	entry := frame.entry(d.key)
	entry.once.Do(func() {
		entry.value, entry.err = c.build(d, path)
	})

	return entry.value, entry.err
}

// Has checks if a service is registered.
func (c *containerImpl) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.registry[key]

	return exists
}

// Keys returns all registered service keys in registration order.
func (c *containerImpl) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, len(c.order))
	copy(keys, c.order)

	return keys
}

// Inspect returns diagnostic information about a registration.
func (c *containerImpl) Inspect(key string) ServiceInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, exists := c.registry[key]
	if !exists {
		return ServiceInfo{Key: key}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	info := ServiceInfo{
		Key:      key,
		Lifetime: d.lifetime,
		Cached:   d.built,
	}

	if len(d.deps) > 0 {
		info.Dependencies = make([]string, len(d.deps))
		copy(info.Dependencies, d.deps)
	}

	if len(d.metadata) > 0 {
		info.Metadata = make(map[string]string, len(d.metadata))
		for k, v := range d.metadata {
			info.Metadata[k] = v
		}
	}

	return info
}

// Use adds resolve middleware to the container.
// Middleware is called in the order it was added.
func (c *containerImpl) Use(mw Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware.add(mw)
}

// Validate checks the declared dependency graph for unregistered keys and
// cycles. Intended to run once, after the composition root finishes
// registering services.
func (c *containerImpl) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	graph := newDependencyGraph()

	for _, key := range c.order {
		d := c.registry[key]
		graph.addNode(key, d.deps)

		for _, dep := range d.deps {
			if _, ok := c.registry[dep]; !ok {
				return fmt.Errorf("service %q depends on %q: %w", key, dep, ErrNotRegistered)
			}
		}
	}

	_, err := graph.topologicalSort()

	return err
}

// Clear empties the registry and both caches and ends every scope.
func (c *containerImpl) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry = make(map[string]*descriptor)
	c.order = nil
	c.scopes = nil
}
