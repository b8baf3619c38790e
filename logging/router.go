// Package logging provides the structured, multi-channel logging router.
// Each named channel owns its sinks (console, dedicated file, and for the
// audit channel a size-rotated archive) and a selectable record format.
// Built on zap cores; rotation via lumberjack.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Channel names routed by the convenience API.
const (
	ChannelMain        = "main"
	ChannelError       = "error"
	ChannelPerformance = "performance"
	ChannelAudit       = "audit"
	ChannelDebug       = "debug"
)

// channelFiles maps each channel to its dedicated log file.
var channelFiles = map[string]string{
	ChannelMain:        "application.log",
	ChannelError:       "errors.log",
	ChannelPerformance: "performance.log",
	ChannelAudit:       "audit.log",
	ChannelDebug:       "debug.log",
}

// auditArchiveFile is the size-rotated companion of the audit channel.
const auditArchiveFile = "audit_archive.log"

// Router dispatches records to named channels.
type Router struct {
	channels map[string]*channel
	closers  []io.Closer

	ctxMu sync.RWMutex
	ctx   Context
}

type channel struct {
	name   string
	logger *zap.Logger
}

// New builds a router with the five standard channels under cfg.Dir.
func New(cfg Config) (*Router, error) {
	cfg = cfg.withDefaults()

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	r := &Router{channels: make(map[string]*channel)}

	console := zapcore.Lock(zapcore.AddSync(os.Stdout))

	for name, file := range channelFiles {
		ch, closers, err := buildChannel(cfg, name, file, console)
		if err != nil {
			_ = r.Close()

			return nil, err
		}

		r.channels[name] = ch
		r.closers = append(r.closers, closers...)
	}

	return r, nil
}

// buildChannel assembles the tee of cores for one channel.
func buildChannel(cfg Config, name, file string, console zapcore.WriteSyncer) (*channel, []io.Closer, error) {
	chLevel := cfg.channelLevel(name)
	enc, err := encoderFor(cfg.channelFormat(name))
	if err != nil {
		return nil, nil, fmt.Errorf("channel %s: %w", name, err)
	}

	var (
		cores   []zapcore.Core
		closers []io.Closer
	)

	// Dedicated file sink, debug floor.
	f, err := os.OpenFile(filepath.Join(cfg.Dir, file), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", file, err)
	}

	closers = append(closers, f)
	cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(f)), enablerAt(maxLevel(chLevel, DebugLevel))))

	// Shared console sink, info floor, always plain.
	if cfg.Console {
		plain, _ := encoderFor(FormatPlain)
		cores = append(cores, zapcore.NewCore(plain, console, enablerAt(maxLevel(chLevel, InfoLevel))))
	}

	// Size-rotated archive for the audit channel.
	if name == ChannelAudit {
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, auditArchiveFile),
			MaxSize:    cfg.RotateMaxSizeMB,
			MaxBackups: cfg.RotateBackups,
		}
		closers = append(closers, lj)
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(lj), enablerAt(maxLevel(chLevel, DebugLevel))))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2)).Named(name)

	return &channel{name: name, logger: logger}, closers, nil
}

func encoderFor(format Format) (zapcore.Encoder, error) {
	switch format {
	case FormatPlain:
		return zapcore.NewConsoleEncoder(plainEncoderConfig()), nil
	case FormatStructured:
		return newKVEncoder(), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(jsonEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func plainEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "timestamp",
		LevelKey:         "level",
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " - ",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      encodeLevel,
		EncodeDuration:   zapcore.MillisDurationEncoder,
	}
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "module",
		FunctionKey:    "function",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    encodeLevel,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func enablerAt(floor Level) zapcore.LevelEnabler {
	min := floor.zapLevel()

	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= min
	})
}

func maxLevel(a, b Level) Level {
	if a > b {
		return a
	}

	return b
}

// Log emits a record on an explicit channel. Unknown channels fall back to
// main.
func (r *Router) Log(level Level, channelName, msg string, fields ...zap.Field) {
	r.log(level, channelName, msg, nil, fields)
}

// LogError emits a record on an explicit channel with the error chain
// attached. A nil err behaves like Log.
func (r *Router) LogError(level Level, channelName, msg string, err error, fields ...zap.Field) {
	r.log(level, channelName, msg, err, fields)
}

// Trace emits a trace record on the main channel.
func (r *Router) Trace(msg string, fields ...zap.Field) {
	r.log(TraceLevel, ChannelMain, msg, nil, fields)
}

// Debug emits a debug record on the debug channel.
func (r *Router) Debug(msg string, fields ...zap.Field) {
	r.log(DebugLevel, ChannelDebug, msg, nil, fields)
}

// Info emits an info record on the main channel.
func (r *Router) Info(msg string, fields ...zap.Field) {
	r.log(InfoLevel, ChannelMain, msg, nil, fields)
}

// Warning emits a warning record on the main channel.
func (r *Router) Warning(msg string, fields ...zap.Field) {
	r.log(WarningLevel, ChannelMain, msg, nil, fields)
}

// Error emits an error record. Error records always route to the error
// channel and carry the error chain.
func (r *Router) Error(msg string, err error, fields ...zap.Field) {
	r.log(ErrorLevel, ChannelError, msg, err, fields)
}

// Critical emits a critical record on the error channel with the error chain.
func (r *Router) Critical(msg string, err error, fields ...zap.Field) {
	r.log(CriticalLevel, ChannelError, msg, err, fields)
}

// Performance emits a timing record on the performance channel.
func (r *Router) Performance(msg string, elapsed time.Duration, fields ...zap.Field) {
	fields = append(fields, zap.Float64("execution_time_ms", float64(elapsed)/float64(time.Millisecond)))
	r.log(InfoLevel, ChannelPerformance, msg, nil, fields)
}

// Audit emits an audit-trail record on the audit channel.
func (r *Router) Audit(action, userID string, details map[string]any) {
	fields := []zap.Field{zap.String("action", action), zap.String("user_id", userID)}
	if len(details) > 0 {
		fields = append(fields, zap.Any("details", details))
	}

	r.log(InfoLevel, ChannelAudit, action, nil, fields)
}

func (r *Router) log(level Level, channelName, msg string, err error, fields []zap.Field) {
	ch, ok := r.channels[channelName]
	if !ok {
		ch = r.channels[ChannelMain]
	}

	if ch == nil {
		return
	}

	all := make([]zap.Field, 0, len(fields)+8)
	all = append(all, r.contextFields()...)
	all = append(all, fields...)

	if err != nil {
		all = append(all, exceptionField(err))
	}

	ch.logger.Log(level.zapLevel(), msg, all...)
}

// exceptionField renders the full unwrap chain of err as a sub-object.
func exceptionField(err error) zap.Field {
	chain := make([]string, 0, 4)
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
	}

	return zap.Any("exception", map[string]any{
		"message": err.Error(),
		"chain":   chain,
	})
}

// Close flushes every channel and closes all file sinks.
func (r *Router) Close() error {
	var errs error

	for _, ch := range r.channels {
		// Stdout sync failures are expected on some platforms; file
		// sinks are flushed again by Close below.
		_ = ch.logger.Sync()
	}

	for _, c := range r.closers {
		errs = multierr.Append(errs, c.Close())
	}

	return errs
}
