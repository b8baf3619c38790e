// Package perf provides the performance-instrumentation wrapper: it times
// an operation and emits a performance record through the logging router
// when a duration threshold is exceeded.
package perf

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/courtsight/chassis/logging"
)

// DefaultThreshold is the elapsed-time floor below which successful
// operations stay silent.
const DefaultThreshold = time.Second

// maxArgsLen bounds the rendered argument string in records.
const maxArgsLen = 120

// Monitor wraps operations with timing.
type Monitor struct {
	router    *logging.Router
	threshold time.Duration
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithThreshold overrides the default 1s duration threshold.
func WithThreshold(d time.Duration) Option {
	return func(m *Monitor) { m.threshold = d }
}

// NewMonitor creates a monitor emitting through router.
func NewMonitor(router *logging.Router, opts ...Option) *Monitor {
	m := &Monitor{router: router, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// TrackOption adjusts one tracked call.
type TrackOption func(*trackConfig)

type trackConfig struct {
	args []any
}

// WithArgs records the operation's arguments, truncated, in emitted records.
func WithArgs(args ...any) TrackOption {
	return func(cfg *trackConfig) { cfg.args = args }
}

// Track runs fn, timing it. A successful run slower than the threshold
// emits one performance record; a failed run always emits an error record
// carrying the elapsed time, regardless of the threshold, before the error
// is returned.
func (m *Monitor) Track(name string, fn func() error, opts ...TrackOption) error {
	var cfg trackConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	m.emit(name, elapsed, err, cfg)

	return err
}

// TrackValue is Track for value-returning operations.
func TrackValue[T any](m *Monitor, name string, fn func() (T, error), opts ...TrackOption) (T, error) {
	var cfg trackConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	v, err := fn()
	elapsed := time.Since(start)

	m.emit(name, elapsed, err, cfg)

	return v, err
}

func (m *Monitor) emit(name string, elapsed time.Duration, err error, cfg trackConfig) {
	fields := []zap.Field{zap.String("operation", name)}
	if len(cfg.args) > 0 {
		fields = append(fields, zap.String("args", renderArgs(cfg.args)))
	}

	if err != nil {
		fields = append(fields, zap.Float64("execution_time_ms", float64(elapsed)/float64(time.Millisecond)))
		m.router.LogError(logging.ErrorLevel, logging.ChannelError, name+" failed", err, fields...)

		return
	}

	if elapsed > m.threshold {
		m.router.Performance(name, elapsed, fields...)
	}
}

// renderArgs formats arguments for a record, truncated to a display-safe
// length.
func renderArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}

	s := strings.Join(parts, ", ")
	if len(s) > maxArgsLen {
		s = s[:maxArgsLen] + "..."
	}

	return s
}
