// Package logrusadapter lets github.com/sirupsen/logrus stand in for the
// file-backed Logger.
package logrusadapter

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sivaosorg/filelog"
)

// Config holds configuration for NewFile.
type Config struct {
	Threshold filelog.Severity
	JSON      bool // JSON lines instead of logfmt-style text.
}

// Logger delegates records to a logrus logger.
type Logger struct {
	filelog.Facade
	logger    *logrus.Logger
	threshold filelog.Severity
	file      *os.File
}

// New wraps an existing logrus logger. The logrus level still applies after
// the threshold; set it to logrus.DebugLevel to let the threshold decide alone.
func New(logger *logrus.Logger, threshold filelog.Severity) (*Logger, error) {
	if _, err := filelog.Priority(threshold); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}
	l := &Logger{logger: logger, threshold: threshold}
	l.Facade = filelog.Facade{Sink: l}
	return l, nil
}

// NewFile creates a logrus logger appending to path. A filelog.StreamScheme
// path writes to the named standard stream instead.
func NewFile(path string, cfg Config) (*Logger, error) {
	if _, err := filelog.Priority(cfg.Threshold); err != nil {
		return nil, err
	}

	lg := logrus.New()
	lg.SetLevel(logrus.DebugLevel)
	if cfg.JSON {
		lg.SetFormatter(&logrus.JSONFormatter{})
	} else {
		lg.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}

	var file *os.File
	switch path {
	case filelog.StreamScheme + "stdout":
		lg.SetOutput(os.Stdout)
	case filelog.StreamScheme + "stderr":
		lg.SetOutput(os.Stderr)
	default:
		f, err := filelog.OpenAppend(path)
		if err != nil {
			return nil, err
		}
		file = f
		lg.SetOutput(f)
	}

	l, err := New(lg, cfg.Threshold)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, err
	}
	l.file = file
	return l, nil
}

// Log validates level, applies the threshold and hands the record to logrus.
func (l *Logger) Log(level filelog.Severity, msg interface{}, ctx filelog.Fields) error {
	if _, err := filelog.Priority(level); err != nil {
		return err
	}
	if !filelog.Allows(l.threshold, level) {
		return nil
	}
	fields := make(logrus.Fields, len(ctx)+1)
	for k, v := range ctx {
		fields[k] = v
	}
	fields["severity"] = string(level)
	l.logger.WithFields(fields).Log(logrusLevel(level), filelog.MessageText(msg))
	return nil
}

// Close closes the file opened by NewFile, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if err := f.Close(); err != nil {
		return &filelog.IOError{Op: "close", Path: f.Name(), Err: errors.WithStack(err)}
	}
	return nil
}

// logrusLevel maps a severity onto logrus. The three most severe levels map to
// ErrorLevel because logrus' Panic and Fatal levels abort the caller.
func logrusLevel(level filelog.Severity) logrus.Level {
	switch level {
	case filelog.EmergencyIssuer, filelog.AlertIssuer, filelog.CriticalIssuer, filelog.ErrorIssuer:
		return logrus.ErrorLevel
	case filelog.WarningIssuer:
		return logrus.WarnLevel
	case filelog.NoticeIssuer, filelog.InfoIssuer:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
