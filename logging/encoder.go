package logging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var kvPool = buffer.NewPool()

// kvEncoder renders records as sorted key=value pairs, one record per line.
// It implements zapcore.Encoder on top of the map object encoder.
type kvEncoder struct {
	*zapcore.MapObjectEncoder
}

func newKVEncoder() *kvEncoder {
	return &kvEncoder{zapcore.NewMapObjectEncoder()}
}

// Clone implements zapcore.Encoder.
func (e *kvEncoder) Clone() zapcore.Encoder {
	clone := newKVEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}

	return clone
}

// EncodeEntry implements zapcore.Encoder.
func (e *kvEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := newKVEncoder()
	for k, v := range e.Fields {
		final.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(final)
	}

	line := kvPool.Get()

	line.AppendString("timestamp=")
	line.AppendString(ent.Time.Format("2006-01-02T15:04:05.000Z0700"))
	line.AppendString(" level=")
	line.AppendString(zapLevelName(ent.Level))

	if ent.LoggerName != "" {
		line.AppendString(" logger=")
		line.AppendString(ent.LoggerName)
	}

	if ent.Caller.Defined {
		line.AppendString(" module=")
		line.AppendString(ent.Caller.TrimmedPath())
	}

	line.AppendString(" message=")
	line.AppendString(strconv.Quote(ent.Message))

	keys := make([]string, 0, len(final.Fields))
	for k := range final.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		line.AppendString(" ")
		line.AppendString(k)
		line.AppendString("=")
		line.AppendString(formatValue(final.Fields[k]))
	}

	line.AppendString(zapcore.DefaultLineEnding)

	return line, nil
}

// formatValue renders a field value, quoting anything a key=value parser
// would split.
func formatValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if s == "" || strings.ContainsAny(s, " =\"") {
		return strconv.Quote(s)
	}

	return s
}
