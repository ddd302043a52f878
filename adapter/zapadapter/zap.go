// Package zapadapter lets go.uber.org/zap stand in for the file-backed Logger.
package zapadapter

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sivaosorg/filelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format represents the output encoding of the zap core.
type Format string

// Format constants
const (
	// JSONFormat outputs structured JSON logs
	JSONFormat Format = "json"
	// TextFormat outputs human-readable console logs
	TextFormat Format = "text"
)

// Config holds configuration for NewFile.
type Config struct {
	Threshold filelog.Severity
	Format    Format
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: filelog.DebugIssuer,
		Format:    JSONFormat,
	}
}

// Logger delegates records to a zap logger. The eight severity methods come
// from the embedded filelog.Facade.
type Logger struct {
	filelog.Facade
	logger    *zap.Logger
	threshold filelog.Severity
	file      *os.File
}

// New wraps an existing zap logger. Records less severe than threshold are
// dropped before zap sees them.
func New(logger *zap.Logger, threshold filelog.Severity) (*Logger, error) {
	if _, err := filelog.Priority(threshold); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Logger{logger: logger, threshold: threshold}
	l.Facade = filelog.Facade{Sink: l}
	return l, nil
}

// NewFile creates a zap logger appending to path, creating parent directories.
// A filelog.StreamScheme path writes to the named standard stream instead.
func NewFile(path string, cfg Config) (*Logger, error) {
	if _, err := filelog.Priority(cfg.Threshold); err != nil {
		return nil, err
	}

	var (
		sink zapcore.WriteSyncer
		file *os.File
	)
	switch path {
	case filelog.StreamScheme + "stdout":
		sink = zapcore.Lock(os.Stdout)
	case filelog.StreamScheme + "stderr":
		sink = zapcore.Lock(os.Stderr)
	default:
		f, err := filelog.OpenAppend(path)
		if err != nil {
			return nil, err
		}
		file = f
		sink = zapcore.AddSync(f)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
	var encoder zapcore.Encoder
	if cfg.Format == TextFormat {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, sink, zapcore.DebugLevel)
	l, err := New(zap.New(core), cfg.Threshold)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, err
	}
	l.file = file
	return l, nil
}

// Log validates level, applies the threshold and hands the record to zap.
// The severity name is kept in a "severity" field because zap has fewer levels.
func (l *Logger) Log(level filelog.Severity, msg interface{}, ctx filelog.Fields) error {
	if _, err := filelog.Priority(level); err != nil {
		return err
	}
	if !filelog.Allows(l.threshold, level) {
		return nil
	}
	fields := make([]zap.Field, 0, len(ctx)+1)
	fields = append(fields, zap.String("severity", string(level)))
	fields = append(fields, contextFields(ctx)...)

	if ce := l.logger.Check(zapLevel(level), filelog.MessageText(msg)); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// Close syncs the logger and closes the file opened by NewFile, if any.
// Sync errors are only reported for files: standard streams often refuse fsync.
func (l *Logger) Close() error {
	syncErr := l.logger.Sync()
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if syncErr != nil {
		_ = f.Close()
		return &filelog.IOError{Op: "sync", Path: f.Name(), Err: errors.WithStack(syncErr)}
	}
	if err := f.Close(); err != nil {
		return &filelog.IOError{Op: "close", Path: f.Name(), Err: errors.WithStack(err)}
	}
	return nil
}

// zapLevel maps a severity onto zap. The three most severe levels map to
// ErrorLevel because zap's DPanic, Panic and Fatal levels abort the process.
func zapLevel(level filelog.Severity) zapcore.Level {
	switch level {
	case filelog.EmergencyIssuer, filelog.AlertIssuer, filelog.CriticalIssuer, filelog.ErrorIssuer:
		return zapcore.ErrorLevel
	case filelog.WarningIssuer:
		return zapcore.WarnLevel
	case filelog.NoticeIssuer, filelog.InfoIssuer:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func contextFields(ctx filelog.Fields) []zap.Field {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, ctx[k]))
	}
	return fields
}
