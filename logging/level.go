package logging

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Level is the router's log level scale.
type Level int8

const (
	// TraceLevel is the most verbose level. zap has no trace level, so
	// trace records are emitted at zap's debug level.
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarningLevel
	ErrorLevel
	CriticalLevel
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case CriticalLevel:
		return "critical"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "trace":
		return TraceLevel, nil
	case "debug", "":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	case "critical":
		return CriticalLevel, nil
	default:
		return DebugLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// zapLevel maps the router scale onto zapcore's. Critical rides on
// DPanicLevel (the router never builds development loggers, so DPanic does
// not panic); the custom level encoder renders it as "critical".
func (l Level) zapLevel() zapcore.Level {
	switch l {
	case TraceLevel, DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case CriticalLevel:
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// zapLevelName renders a zap level with the router's names.
func zapLevelName(l zapcore.Level) string {
	switch l {
	case zapcore.WarnLevel:
		return "warning"
	case zapcore.DPanicLevel:
		return "critical"
	default:
		return l.String()
	}
}

// encodeLevel is zapLevelName as a zapcore level encoder.
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(zapLevelName(l))
}
