package chassis

import "fmt"

// Resolve resolves a service with type safety.
func Resolve[T any](c Container, key string) (T, error) {
	var zero T

	instance, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("service %q is %T, not %T", key, instance, zero)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c Container, key string) T {
	instance, err := Resolve[T](c, key)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", key, err))
	}

	return instance
}
