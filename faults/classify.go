package faults

import "strings"

// The keyword tables below are a deliberately simple heuristic for errors
// that were not classified at the raise site: case-insensitive substring
// match against the error message, first rule wins. Call sites that know
// their failure domain should use New/Wrap with explicit values instead.

type categoryRule struct {
	keywords []string
	category Category
}

var categoryRules = []categoryRule{
	{[]string{"connection", "network", "request"}, CategoryAPIRequest},
	{[]string{"data", "dataframe", "csv"}, CategoryDataLoading},
	{[]string{"render", "widget"}, CategoryUIRendering},
	{[]string{"cache", "redis"}, CategoryCacheOperation},
	{[]string{"export", "pdf", "excel"}, CategoryExportOperation},
	{[]string{"ai", "model", "prediction"}, CategoryAIProcessing},
	{[]string{"auth", "permission"}, CategoryAuthentication},
	{[]string{"config", "setting"}, CategoryConfiguration},
}

type severityRule struct {
	keywords []string
	severity Severity
}

var severityRules = []severityRule{
	{[]string{"memory", "disk", "database", "critical", "fatal"}, SeverityCritical},
	{[]string{"connection", "authentication", "authorization", "security"}, SeverityHigh},
	{[]string{"processing", "calculation", "rendering"}, SeverityMedium},
}

// ClassifyCategory picks the category for an error message.
// Falls through to Processing when no keyword matches.
func ClassifyCategory(message string) Category {
	lower := strings.ToLower(message)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}

	return CategoryProcessing
}

// ClassifySeverity picks the severity for an error message.
// Falls through to Low when no keyword matches.
func ClassifySeverity(message string) Severity {
	lower := strings.ToLower(message)

	for _, rule := range severityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.severity
			}
		}
	}

	return SeverityLow
}

// Classify builds a record from a raw error, inferring category and
// severity from the message text.
func Classify(err error) *Record {
	rec := New(ClassifyCategory(err.Error()), ClassifySeverity(err.Error()), err.Error())
	rec.Cause = err

	return rec
}
