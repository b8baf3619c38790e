package chassis

// ServiceRegistration holds configuration for a service to be registered.
type ServiceRegistration struct {
	Key     string
	Factory Factory
	Options []RegisterOption
}

// Service creates a ServiceRegistration for batch registration.
//
// Example:
//
//	chassis.RegisterServices(c,
//	    chassis.Service("stats.fetcher", NewFetcher, chassis.AsSingleton()),
//	    chassis.Service("export.pdf", NewExporter, chassis.AsTransient()),
//	)
func Service(key string, factory Factory, opts ...RegisterOption) ServiceRegistration {
	return ServiceRegistration{
		Key:     key,
		Factory: factory,
		Options: opts,
	}
}

// RegisterServices registers multiple services in a single call.
// Returns the first registration error, leaving earlier registrations in place.
func RegisterServices(c Container, services ...ServiceRegistration) error {
	for _, svc := range services {
		if err := c.Register(svc.Key, svc.Factory, svc.Options...); err != nil {
			return err
		}
	}
	return nil
}
