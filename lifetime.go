package chassis

import "fmt"

// Lifetime specifies how many distinct instances a registered service
// produces: one for the container's life, one per resolution, or one per
// active scope.
type Lifetime int

const (
	// Singleton creates the instance on first resolve and caches it for
	// the lifetime of the container.
	Singleton Lifetime = iota

	// Transient creates a fresh instance on every resolve.
	Transient

	// Scoped behaves like Singleton against the active scope frame; the
	// instance is discarded when the scope ends.
	Scoped
)

// String returns the string representation of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

// IsValid checks if the lifetime is one of the three known values.
func (l Lifetime) IsValid() bool {
	return l >= Singleton && l <= Scoped
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifetime) UnmarshalText(text []byte) error {
	switch string(text) {
	case "singleton", "Singleton":
		*l = Singleton
	case "transient", "Transient":
		*l = Transient
	case "scoped", "Scoped":
		*l = Scoped
	default:
		return fmt.Errorf("unknown lifetime %q", string(text))
	}
	return nil
}
