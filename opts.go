package chassis

// RegisterOption configures a service registration.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	lifetime Lifetime
	deps     []string
	metadata map[string]string
}

// AsSingleton sets the Singleton lifetime (the default).
func AsSingleton() RegisterOption {
	return func(rc *registerConfig) { rc.lifetime = Singleton }
}

// AsTransient sets the Transient lifetime.
func AsTransient() RegisterOption {
	return func(rc *registerConfig) { rc.lifetime = Transient }
}

// AsScoped sets the Scoped lifetime.
func AsScoped() RegisterOption {
	return func(rc *registerConfig) { rc.lifetime = Scoped }
}

// WithLifetime sets an explicit lifetime.
func WithLifetime(l Lifetime) RegisterOption {
	return func(rc *registerConfig) { rc.lifetime = l }
}

// WithDependencies declares the service keys this registration depends on.
// Declared dependencies are resolved depth-first before the factory runs,
// and participate in cycle detection and Validate.
func WithDependencies(keys ...string) RegisterOption {
	return func(rc *registerConfig) {
		rc.deps = append(rc.deps, keys...)
	}
}

// WithMetadata attaches a diagnostic key/value pair to the registration.
func WithMetadata(key, value string) RegisterOption {
	return func(rc *registerConfig) {
		if rc.metadata == nil {
			rc.metadata = make(map[string]string)
		}
		rc.metadata[key] = value
	}
}

func applyOptions(opts []RegisterOption) registerConfig {
	rc := registerConfig{lifetime: Singleton}
	for _, opt := range opts {
		opt(&rc)
	}
	return rc
}
