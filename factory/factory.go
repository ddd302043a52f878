// Package factory builds a logging backend from config.Settings, so callers
// can switch between the file-backed Logger and the zap or logrus adapters
// without touching code that only depends on filelog.Interface.
package factory

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sivaosorg/filelog"
	"github.com/sivaosorg/filelog/adapter/logrusadapter"
	"github.com/sivaosorg/filelog/adapter/zapadapter"
	"github.com/sivaosorg/filelog/config"
)

// Backend is a logger that owns resources and must be closed.
type Backend interface {
	filelog.Interface
	io.Closer
}

// Create builds the backend named by s.Backend. An empty name selects the
// file backend. Extra options are applied to file and stream backends only.
func Create(s config.Settings, opts ...filelog.Option) (Backend, error) {
	if s.Backend == "" {
		s.Backend = config.BackendFile
	}
	if s.Format == "" {
		s.Format = config.FormatText
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	threshold, err := s.ThresholdSeverity()
	if err != nil {
		return nil, err
	}

	switch s.Backend {
	case config.BackendFile, config.BackendStream:
		logger, err := filelog.New(s.Directory, threshold, append(s.FileOptions(), opts...)...)
		if err != nil {
			return nil, err
		}
		return logger, nil
	case config.BackendZap:
		logger, err := zapadapter.NewFile(adapterPath(s), zapadapter.Config{
			Threshold: threshold,
			Format:    zapadapter.Format(s.Format),
		})
		if err != nil {
			return nil, err
		}
		return logger, nil
	case config.BackendLogrus:
		logger, err := logrusadapter.NewFile(adapterPath(s), logrusadapter.Config{
			Threshold: threshold,
			JSON:      s.Format == config.FormatJSON,
		})
		if err != nil {
			return nil, err
		}
		return logger, nil
	default:
		return nil, &filelog.ConfigurationError{Value: s.Backend, Reason: "unknown backend"}
	}
}

// adapterPath resolves the file used by the delegating backends. It follows
// the same naming rules as the file backend, with the current date.
func adapterPath(s config.Settings) string {
	if strings.HasPrefix(s.Directory, filelog.StreamScheme) {
		return s.Directory
	}
	return filepath.Join(s.Directory, filelog.FileName(s.Options, time.Now()))
}
