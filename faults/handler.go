package faults

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/courtsight/chassis/logging"
)

// defaultMaxRecent bounds the retained ring of recent records.
const defaultMaxRecent = 50

// Handler is the error middleware. Every failure it handles is normalized
// into a Record, logged on the error channel at a severity-derived level,
// counted, and surfaced to the user through the notifier. Critical records
// additionally run the escalation path.
type Handler struct {
	router   *logging.Router
	notifier Notifier

	mu        sync.Mutex
	counts    map[Category]map[Severity]int
	total     int
	recent    []*Record
	maxRecent int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithNotifier replaces the default console notifier.
func WithNotifier(n Notifier) HandlerOption {
	return func(h *Handler) { h.notifier = n }
}

// WithMaxRecent sets how many recent records are retained for display.
func WithMaxRecent(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxRecent = n
		}
	}
}

// NewHandler creates an error middleware emitting through router.
func NewHandler(router *logging.Router, opts ...HandlerOption) *Handler {
	h := &Handler{
		router:    router,
		notifier:  &ConsoleNotifier{},
		counts:    make(map[Category]map[Severity]int),
		maxRecent: defaultMaxRecent,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleOption adjusts how one failure is handled.
type HandleOption func(*handleConfig)

type handleConfig struct {
	category    Category
	severity    Severity
	userMessage string
	context     map[string]any
	silent      bool
}

// WithCategory pins the category instead of classifying the message.
func WithCategory(c Category) HandleOption {
	return func(cfg *handleConfig) { cfg.category = c }
}

// WithSeverity pins the severity instead of classifying the message.
func WithSeverity(s Severity) HandleOption {
	return func(cfg *handleConfig) { cfg.severity = s }
}

// WithUserMessage overrides the category-derived user message.
func WithUserMessage(msg string) HandleOption {
	return func(cfg *handleConfig) { cfg.userMessage = msg }
}

// WithContext attaches call-site context to the record.
func WithContext(ctx map[string]any) HandleOption {
	return func(cfg *handleConfig) { cfg.context = ctx }
}

// Silent suppresses the user-facing notification. The record is still
// logged, counted and retained; Critical escalation still runs.
func Silent() HandleOption {
	return func(cfg *handleConfig) { cfg.silent = true }
}

// Handle normalizes err into a Record, logs it, updates statistics and
// notifies the user. It returns the record.
func (h *Handler) Handle(err error, opts ...HandleOption) *Record {
	var cfg handleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rec := h.normalize(err, cfg)

	h.logRecord(rec)
	h.record(rec)

	if !cfg.silent {
		h.notifier.Notify(rec)
	}

	if rec.Severity == SeverityCritical {
		h.notifier.Escalate(rec)
	}

	return rec
}

// normalize converts a raw error into a Record, honoring pinned options and
// falling back to keyword classification.
func (h *Handler) normalize(err error, cfg handleConfig) *Record {
	var rec *Record
	if !errors.As(err, &rec) {
		category := cfg.category
		if category == "" {
			category = ClassifyCategory(err.Error())
		}

		severity := cfg.severity
		if severity == "" {
			severity = ClassifySeverity(err.Error())
		}

		rec = Wrap(err, category, severity)
	}

	if cfg.userMessage != "" {
		rec.UserMessage = cfg.userMessage
	}

	for k, v := range cfg.context {
		rec.WithContext(k, v)
	}

	return rec
}

func (h *Handler) logRecord(rec *Record) {
	fields := []zap.Field{
		zap.String("category", string(rec.Category)),
		zap.String("severity", string(rec.Severity)),
		zap.String("error_id", rec.ID),
		zap.String("user_message", rec.UserMessage),
	}

	if len(rec.Context) > 0 {
		fields = append(fields, zap.Any("context", rec.Context))
	}

	h.router.LogError(rec.Severity.Level(), logging.ChannelError, rec.Message, rec.Cause, fields...)
}

// record updates the counters and the bounded recent ring under the lock.
func (h *Handler) record(rec *Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.counts[rec.Category] == nil {
		h.counts[rec.Category] = make(map[Severity]int)
	}
	h.counts[rec.Category][rec.Severity]++
	h.total++

	h.recent = append(h.recent, rec)
	if len(h.recent) > h.maxRecent {
		h.recent = h.recent[len(h.recent)-h.maxRecent:]
	}
}

// Statistics is the observability snapshot of the handler.
type Statistics struct {
	ErrorCounts         map[Category]map[Severity]int
	TotalErrors         int
	RecentNotifications []*Record
	Categories          []Category
	Severities          []Severity
}

// Stats returns a copy of the accumulated statistics.
func (h *Handler) Stats() Statistics {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make(map[Category]map[Severity]int, len(h.counts))
	for cat, bySeverity := range h.counts {
		counts[cat] = make(map[Severity]int, len(bySeverity))
		for sev, n := range bySeverity {
			counts[cat][sev] = n
		}
	}

	recent := make([]*Record, len(h.recent))
	copy(recent, h.recent)

	return Statistics{
		ErrorCounts:         counts,
		TotalErrors:         h.total,
		RecentNotifications: recent,
		Categories:          Categories(),
		Severities:          Severities(),
	}
}

// ResetStats clears counters and the recent ring.
func (h *Handler) ResetStats() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.counts = make(map[Category]map[Severity]int)
	h.total = 0
	h.recent = nil
}
