package faults

import (
	"fmt"
	"io"
	"os"
)

// Notifier surfaces handled errors to the user. The dashboard's UI layer
// supplies its own implementation; ConsoleNotifier is the default.
type Notifier interface {
	// Notify shows the severity-tagged friendly message for a record.
	Notify(rec *Record)

	// Escalate shows the prominent notification for Critical records,
	// including the short error id for log correlation.
	Escalate(rec *Record)
}

// ConsoleNotifier writes notifications to a writer, stdout by default.
type ConsoleNotifier struct {
	Out io.Writer
}

func (n *ConsoleNotifier) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}

	return os.Stdout
}

// Notify implements Notifier.
func (n *ConsoleNotifier) Notify(rec *Record) {
	fmt.Fprintf(n.out(), "%s %s\n", severityIcon(rec.Severity), rec.UserMessage)
}

// Escalate implements Notifier.
func (n *ConsoleNotifier) Escalate(rec *Record) {
	fmt.Fprintf(n.out(), "🚨 CRITICAL: %s (error id %s)\n", rec.UserMessage, rec.ID)
}

func severityIcon(s Severity) string {
	switch s {
	case SeverityCritical:
		return "🚨"
	case SeverityHigh:
		return "❌"
	case SeverityMedium:
		return "⚠️"
	default:
		return "ℹ️"
	}
}
