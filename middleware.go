package chassis

// Middleware provides hooks around service resolution.
// Useful for logging, metrics, and tests.
type Middleware interface {
	// BeforeResolve is called before resolving a service.
	// Return an error to abort resolution.
	BeforeResolve(key string) error

	// AfterResolve is called after resolution, whether it succeeded or
	// failed (instance and err may both be set).
	AfterResolve(key string, instance any, err error)
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{}
}

func (m *middlewareChain) add(mw Middleware) {
	m.middleware = append(m.middleware, mw)
}

func (m *middlewareChain) beforeResolve(key string) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(key); err != nil {
			return err
		}
	}
	return nil
}

func (m *middlewareChain) afterResolve(key string, instance any, err error) {
	for _, mw := range m.middleware {
		mw.AfterResolve(key, instance, err)
	}
}

// FuncMiddleware wraps functions as Middleware. Nil funcs are no-ops.
type FuncMiddleware struct {
	BeforeResolveFunc func(key string) error
	AfterResolveFunc  func(key string, instance any, err error)
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(key string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(key)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(key string, instance any, err error) {
	if f.AfterResolveFunc != nil {
		f.AfterResolveFunc(key, instance, err)
	}
}
