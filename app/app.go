// Package app is the composition root: it owns the one container per
// process, provisions the core runtime services (logging router, error
// middleware, performance monitor) and registers the dashboard's external
// collaborators into it. There is no ambient global state; everything
// threads through the Root.
package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/courtsight/chassis"
	"github.com/courtsight/chassis/faults"
	"github.com/courtsight/chassis/logging"
	"github.com/courtsight/chassis/perf"
)

// Root owns the container and the core services registered into it.
type Root struct {
	cfg       Config
	container chassis.Container
	router    *logging.Router
	handler   *faults.Handler
	monitor   *perf.Monitor
}

// Option configures the root.
type Option func(*rootConfig)

type rootConfig struct {
	notifier faults.Notifier
}

// WithNotifier routes user-facing error notifications to the given
// notifier instead of the console.
func WithNotifier(n faults.Notifier) Option {
	return func(rc *rootConfig) { rc.notifier = n }
}

// New builds the composition root from cfg: the logging router, the error
// middleware emitting through it, the performance monitor, and a container
// with all of them pre-registered as instances.
func New(cfg Config, opts ...Option) (*Root, error) {
	var rc rootConfig
	for _, opt := range opts {
		opt(&rc)
	}

	router, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	handlerOpts := []faults.HandlerOption{faults.WithMaxRecent(cfg.Faults.MaxRecent)}
	if rc.notifier != nil {
		handlerOpts = append(handlerOpts, faults.WithNotifier(rc.notifier))
	}
	handler := faults.NewHandler(router, handlerOpts...)

	monitor := perf.NewMonitor(router, perf.WithThreshold(time.Duration(cfg.Perf.ThresholdMS)*time.Millisecond))

	c := chassis.New()
	c.Use(resolveLogger(router))

	if err := chassis.RegisterKeyInstance(c, ConfigKey, cfg); err != nil {
		return nil, err
	}
	if err := chassis.RegisterKeyInstance(c, RouterKey, router); err != nil {
		return nil, err
	}
	if err := chassis.RegisterKeyInstance(c, FaultsKey, handler); err != nil {
		return nil, err
	}
	if err := chassis.RegisterKeyInstance(c, PerfKey, monitor); err != nil {
		return nil, err
	}

	return &Root{
		cfg:       cfg,
		container: c,
		router:    router,
		handler:   handler,
		monitor:   monitor,
	}, nil
}

// Container returns the root's container.
func (r *Root) Container() chassis.Container { return r.container }

// Router returns the logging router.
func (r *Root) Router() *logging.Router { return r.router }

// Faults returns the error middleware.
func (r *Root) Faults() *faults.Handler { return r.handler }

// Perf returns the performance monitor.
func (r *Root) Perf() *perf.Monitor { return r.monitor }

// RegisterCollaborators registers the dashboard's external services.
//
// Example:
//
//	root.RegisterCollaborators(
//	    chassis.Service(app.DataServiceKey.Name(), newNBAFetcher,
//	        chassis.WithDependencies(app.CacheStoreKey.Name())),
//	    chassis.Service(app.CacheStoreKey.Name(), newMemoryCache),
//	)
func (r *Root) RegisterCollaborators(services ...chassis.ServiceRegistration) error {
	return chassis.RegisterServices(r.container, services...)
}

// Validate checks the container's dependency graph. Call after all
// collaborators are registered.
func (r *Root) Validate() error {
	return r.container.Validate()
}

// Close flushes and closes the logging sinks.
func (r *Root) Close() error {
	return r.router.Close()
}

// resolveLogger traces container resolutions on the debug channel.
func resolveLogger(router *logging.Router) chassis.Middleware {
	return &chassis.FuncMiddleware{
		AfterResolveFunc: func(key string, _ any, err error) {
			if err != nil {
				router.Debug("service resolution failed",
					zap.String("service", key), zap.String("error", err.Error()))

				return
			}

			router.Debug("service resolved", zap.String("service", key))
		},
	}
}
