package chassis

import "sync"

// scopeFrame holds the scoped-instance cache for one active scope. Frames
// form a stack on the container: StartScope pushes, EndScope pops, and
// scoped resolution always binds to the newest frame. A lone frame matches
// the classic single-scope model; nested scopes compose instead of clearing
// each other's instances.
type scopeFrame struct {
	mu      sync.Mutex
	entries map[string]*scopeEntry
}

// scopeEntry memoizes one scoped instance. The once guarantees a single
// factory invocation per frame even under racing resolvers.
type scopeEntry struct {
	once  sync.Once
	value any
	err   error
}

func newScopeFrame() *scopeFrame {
	return &scopeFrame{entries: make(map[string]*scopeEntry)}
}

// entry returns the memoization slot for key, creating it on first use.
func (f *scopeFrame) entry(key string) *scopeEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	if !ok {
		e = &scopeEntry{}
		f.entries[key] = e
	}

	return e
}

// activeFrame returns the newest scope frame, or nil when no scope is active.
func (c *containerImpl) activeFrame() *scopeFrame {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n := len(c.scopes); n > 0 {
		return c.scopes[n-1]
	}

	return nil
}

// StartScope activates a fresh scope. Scoped services resolved until the
// matching EndScope share one instance per key.
func (c *containerImpl) StartScope() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scopes = append(c.scopes, newScopeFrame())
}

// EndScope deactivates the newest scope and discards its instances.
func (c *containerImpl) EndScope() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.scopes) == 0 {
		return errScopeInactive("")
	}

	c.scopes = c.scopes[:len(c.scopes)-1]

	return nil
}

// InScope runs fn inside a scope. EndScope is guaranteed on exit, including
// panicking exits.
func (c *containerImpl) InScope(fn func() error) error {
	c.StartScope()
	defer func() { _ = c.EndScope() }()

	return fn()
}
