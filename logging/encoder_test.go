package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encodeKV(t *testing.T, ent zapcore.Entry, fields ...zap.Field) string {
	t.Helper()

	buf, err := newKVEncoder().EncodeEntry(ent, fields)
	require.NoError(t, err)
	defer buf.Free()

	return buf.String()
}

func TestKVEncoder_SortedFields(t *testing.T) {
	ent := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Message: "stats loaded",
	}

	line := encodeKV(t, ent,
		zap.String("team", "DEN"),
		zap.Int("games", 82),
		zap.String("season", "2024-25"),
	)

	assert.Equal(t,
		"timestamp=2025-03-14T09:30:00.000Z level=info message=\"stats loaded\" games=82 season=2024-25 team=DEN\n",
		line)
}

func TestKVEncoder_QuotesValuesWithSpaces(t *testing.T) {
	ent := zapcore.Entry{Level: zapcore.WarnLevel, Message: "msg"}

	line := encodeKV(t, ent, zap.String("reason", "rate limit hit"))

	assert.Contains(t, line, `reason="rate limit hit"`)
	assert.Contains(t, line, "level=warning")
}

func TestKVEncoder_QuotesEmptyValues(t *testing.T) {
	ent := zapcore.Entry{Level: zapcore.InfoLevel, Message: "msg"}

	line := encodeKV(t, ent, zap.String("user", ""))

	assert.Contains(t, line, `user=""`)
}

func TestKVEncoder_LoggerName(t *testing.T) {
	ent := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		LoggerName: "audit",
		Message:    "export",
	}

	line := encodeKV(t, ent)

	assert.Contains(t, line, "logger=audit")
}

func TestKVEncoder_CloneCarriesFields(t *testing.T) {
	enc := newKVEncoder()
	enc.AddString("service", "dashboard")

	clone := enc.Clone()

	buf, err := clone.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Message: "msg"}, nil)
	require.NoError(t, err)
	defer buf.Free()

	assert.Contains(t, buf.String(), "service=dashboard")
}
