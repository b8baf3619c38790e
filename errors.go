package chassis

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidFactory is returned when a nil factory is registered.
var ErrInvalidFactory = errors.New("factory cannot be nil")

// ErrAlreadyRegistered is returned when a key is registered twice.
// The original registration is left untouched.
var ErrAlreadyRegistered = errors.New("service already registered")

// ErrNotRegistered is returned when resolving an unknown key.
var ErrNotRegistered = errors.New("service not registered")

// ErrScopeInactive is returned when a Scoped service is resolved, or a scope
// is ended, while no scope is active.
var ErrScopeInactive = errors.New("no active scope")

// ErrCircularDependency is returned when declared dependencies form a cycle.
var ErrCircularDependency = errors.New("circular dependency")

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

func errAlreadyRegistered(key string) error {
	return fmt.Errorf("service %q: %w", key, ErrAlreadyRegistered)
}

func errNotRegistered(key string) error {
	return fmt.Errorf("service %q: %w", key, ErrNotRegistered)
}

func errScopeInactive(key string) error {
	if key == "" {
		return ErrScopeInactive
	}
	return fmt.Errorf("service %q is scoped: %w", key, ErrScopeInactive)
}

func errCycle(chain []string) error {
	return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}

// factoryError wraps a failure raised by a service factory so callers can
// tell which registration produced it.
func factoryError(key string, cause error) error {
	return fmt.Errorf("service %q: factory failed: %w", key, cause)
}
