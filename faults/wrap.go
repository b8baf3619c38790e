package faults

// Run executes fn under the error middleware. On success it returns nil.
// On failure the error is handled (logged, counted, notified) and then:
// Critical records propagate the original error to the caller; every lower
// severity is swallowed and Run returns nil. Callers therefore only see
// Critical failures as errors; everything else surfaces through logs,
// statistics and notifications. When no severity is pinned, Run handles the
// failure at Medium.
func Run(h *Handler, fn func() error, opts ...HandleOption) error {
	if err := fn(); err != nil {
		rec := h.Handle(err, withDefaultSeverity(opts)...)
		if rec.Severity == SeverityCritical {
			return err
		}

		return nil
	}

	return nil
}

// RunValue is Run for value-returning operations. Swallowed failures yield
// the zero value and a nil error.
func RunValue[T any](h *Handler, fn func() (T, error), opts ...HandleOption) (T, error) {
	v, err := fn()
	if err == nil {
		return v, nil
	}

	var zero T

	rec := h.Handle(err, withDefaultSeverity(opts)...)
	if rec.Severity == SeverityCritical {
		return zero, err
	}

	return zero, nil
}

// withDefaultSeverity prepends the Medium default so caller options still
// win. Records that arrive pre-classified keep their own severity.
func withDefaultSeverity(opts []HandleOption) []HandleOption {
	return append([]HandleOption{WithSeverity(SeverityMedium)}, opts...)
}
