package chassis

// ServiceKey provides type-safe service identification.
// Use NewKey to create typed keys for your services.
type ServiceKey[T any] struct {
	name string
}

// NewKey creates a new typed service key.
// The type parameter T ensures type safety when registering and resolving.
//
// Example:
//
//	var RouterKey = chassis.NewKey[*logging.Router]("logging.router")
func NewKey[T any](name string) ServiceKey[T] {
	return ServiceKey[T]{name: name}
}

// Name returns the string key.
func (k ServiceKey[T]) Name() string {
	return k.name
}

// RegisterKey registers a service using a typed service key.
func RegisterKey[T any](c Container, key ServiceKey[T], factory func(Container) (T, error), opts ...RegisterOption) error {
	wrapped := func(c Container) (any, error) {
		return factory(c)
	}
	return c.Register(key.name, wrapped, opts...)
}

// RegisterKeyInstance registers a pre-built instance under a typed key.
func RegisterKeyInstance[T any](c Container, key ServiceKey[T], instance T) error {
	return c.RegisterInstance(key.name, instance)
}

// ResolveKey resolves a service using a typed service key.
func ResolveKey[T any](c Container, key ServiceKey[T]) (T, error) {
	return Resolve[T](c, key.name)
}

// MustKey resolves a service using a typed key and panics on error.
// Use only during startup.
func MustKey[T any](c Container, key ServiceKey[T]) T {
	return Must[T](c, key.name)
}

// HasKey checks if a service is registered under a typed key.
func HasKey[T any](c Container, key ServiceKey[T]) bool {
	return c.Has(key.name)
}
