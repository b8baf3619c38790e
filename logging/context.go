package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context carries request-scoped identifiers attached to every record the
// router emits while the context is set. Zero-valued fields are omitted.
type Context struct {
	UserID        string
	SessionID     string
	RequestID     string
	Component     string
	Function      string
	ExecutionTime float64 // milliseconds
	Extra         map[string]any
}

// NewSessionContext returns a Context for userID with generated session and
// request ids.
func NewSessionContext(userID string) Context {
	return Context{
		UserID:    userID,
		SessionID: uuid.NewString(),
		RequestID: uuid.NewString(),
	}
}

// merge overlays non-zero fields of other onto c. Extra maps are merged
// key-wise, other winning collisions.
func (c Context) merge(other Context) Context {
	if other.UserID != "" {
		c.UserID = other.UserID
	}
	if other.SessionID != "" {
		c.SessionID = other.SessionID
	}
	if other.RequestID != "" {
		c.RequestID = other.RequestID
	}
	if other.Component != "" {
		c.Component = other.Component
	}
	if other.Function != "" {
		c.Function = other.Function
	}
	if other.ExecutionTime != 0 {
		c.ExecutionTime = other.ExecutionTime
	}

	if len(other.Extra) > 0 {
		merged := make(map[string]any, len(c.Extra)+len(other.Extra))
		for k, v := range c.Extra {
			merged[k] = v
		}
		for k, v := range other.Extra {
			merged[k] = v
		}
		c.Extra = merged
	}

	return c
}

// SetContext replaces the router's context.
func (r *Router) SetContext(ctx Context) {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()
	r.ctx = ctx
}

// UpdateContext overlays non-zero fields of ctx onto the current context.
func (r *Router) UpdateContext(ctx Context) {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()
	r.ctx = r.ctx.merge(ctx)
}

// ClearContext resets the context to empty.
func (r *Router) ClearContext() {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()
	r.ctx = Context{}
}

// Context returns a copy of the current context.
func (r *Router) Context() Context {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()

	return r.ctx
}

func (r *Router) contextFields() []zap.Field {
	r.ctxMu.RLock()
	ctx := r.ctx
	r.ctxMu.RUnlock()

	fields := make([]zap.Field, 0, 7)

	if ctx.UserID != "" {
		fields = append(fields, zap.String("user_id", ctx.UserID))
	}
	if ctx.SessionID != "" {
		fields = append(fields, zap.String("session_id", ctx.SessionID))
	}
	if ctx.RequestID != "" {
		fields = append(fields, zap.String("request_id", ctx.RequestID))
	}
	if ctx.Component != "" {
		fields = append(fields, zap.String("component", ctx.Component))
	}
	if ctx.Function != "" {
		fields = append(fields, zap.String("function", ctx.Function))
	}
	if ctx.ExecutionTime != 0 {
		fields = append(fields, zap.Float64("execution_time_ms", ctx.ExecutionTime))
	}

	for k, v := range ctx.Extra {
		fields = append(fields, zap.Any(k, v))
	}

	return fields
}
