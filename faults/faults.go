// Package faults provides the error-classification middleware: a fixed
// taxonomy of categories and severities, structured error records with
// user-facing messages, counting and bounded retention for observability,
// and a swallow-vs-reraise execution combinator.
package faults

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/courtsight/chassis/logging"
)

// Category is the failure domain of an error.
type Category string

const (
	CategoryDataLoading     Category = "data_loading"
	CategoryAPIRequest      Category = "api_request"
	CategoryProcessing      Category = "processing"
	CategoryUIRendering     Category = "ui_rendering"
	CategoryCacheOperation  Category = "cache_operation"
	CategoryExportOperation Category = "export_operation"
	CategoryAIProcessing    Category = "ai_processing"
	CategoryAuthentication  Category = "authentication"
	CategoryConfiguration   Category = "configuration"
	CategorySystem          Category = "system"
)

// Severity is the impact level of an error.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Categories returns all categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryDataLoading, CategoryAPIRequest, CategoryProcessing,
		CategoryUIRendering, CategoryCacheOperation, CategoryExportOperation,
		CategoryAIProcessing, CategoryAuthentication, CategoryConfiguration,
		CategorySystem,
	}
}

// Severities returns all severities from lowest to highest.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Level maps a severity onto the logging level used for its record.
func (s Severity) Level() logging.Level {
	switch s {
	case SeverityCritical:
		return logging.CriticalLevel
	case SeverityHigh:
		return logging.ErrorLevel
	case SeverityMedium:
		return logging.WarningLevel
	default:
		return logging.InfoLevel
	}
}

// userMessages maps each category to its user-facing message template,
// independent of severity.
var userMessages = map[Category]string{
	CategoryDataLoading:     "Unable to load the requested data. Please try again.",
	CategoryAPIRequest:      "The data provider is unreachable right now. Please retry shortly.",
	CategoryProcessing:      "Something went wrong while processing your request.",
	CategoryUIRendering:     "The view could not be rendered. Try refreshing the page.",
	CategoryCacheOperation:  "Cached data is temporarily unavailable.",
	CategoryExportOperation: "The export could not be completed.",
	CategoryAIProcessing:    "The prediction service is unavailable right now.",
	CategoryAuthentication:  "You are not authorized to perform this action.",
	CategoryConfiguration:   "The application is misconfigured. Contact an administrator.",
	CategorySystem:          "An unexpected error occurred.",
}

// UserMessage returns the friendly message template for a category.
func (c Category) UserMessage() string {
	if msg, ok := userMessages[c]; ok {
		return msg
	}

	return userMessages[CategorySystem]
}

// Record is a classified, structured error. Records are immutable once
// handled; the handler retains a bounded ring of recent ones for display.
type Record struct {
	ID          string
	Category    Category
	Severity    Severity
	Message     string
	UserMessage string
	Context     map[string]any
	Timestamp   time.Time
	Cause       error
}

// New creates a record with an explicit category and severity.
func New(category Category, severity Severity, message string) *Record {
	if category == "" {
		category = CategorySystem
	}
	if severity == "" {
		severity = SeverityMedium
	}

	return &Record{
		ID:          errorID(message),
		Category:    category,
		Severity:    severity,
		Message:     message,
		UserMessage: category.UserMessage(),
		Timestamp:   time.Now(),
	}
}

// Wrap creates a record carrying err as its cause.
func Wrap(err error, category Category, severity Severity) *Record {
	rec := New(category, severity, err.Error())
	rec.Cause = err

	return rec
}

// WithUserMessage overrides the category-derived user message.
func (r *Record) WithUserMessage(msg string) *Record {
	r.UserMessage = msg
	return r
}

// WithContext attaches a context value to the record.
func (r *Record) WithContext(key string, value any) *Record {
	if r.Context == nil {
		r.Context = make(map[string]any)
	}
	r.Context[key] = value

	return r
}

// Error implements the error interface.
func (r *Record) Error() string {
	return fmt.Sprintf("[%s:%s] %s", r.Category, r.Severity, r.Message)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause.
func (r *Record) Unwrap() error {
	return r.Cause
}

// errorID derives the short correlation id used to tie user notifications
// to log records. Deliberately a message hash, not a unique id: identical
// failures share one id.
func errorID(message string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(message))

	return fmt.Sprintf("%08x", h.Sum32())
}
