// Package config loads logger settings from files, environment variables,
// command-line flags and plain option maps.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sivaosorg/filelog"
)

// Backend names understood by the factory.
const (
	BackendFile   = "file"
	BackendStream = "stream"
	BackendZap    = "zap"
	BackendLogrus = "logrus"
)

// Format names used by the zap and logrus backends.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Settings is everything needed to build a logging backend.
type Settings struct {
	Backend   string         `mapstructure:"backend"`
	Directory string         `mapstructure:"directory"`
	Threshold string         `mapstructure:"threshold"`
	Format    string         `mapstructure:"format"`
	Options   filelog.Config `mapstructure:"options"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Backend:   BackendFile,
		Directory: "logs",
		Threshold: string(filelog.DebugIssuer),
		Format:    FormatText,
		Options:   filelog.DefaultConfig(),
	}
}

// Validate checks the settings for values no backend could use.
func (s *Settings) Validate() error {
	if _, err := filelog.ParseSeverity(s.Threshold); err != nil {
		return err
	}
	switch s.Backend {
	case BackendFile, BackendStream, BackendZap, BackendLogrus:
	default:
		return &filelog.ConfigurationError{Value: s.Backend, Reason: "unknown backend"}
	}
	switch s.Format {
	case FormatText, FormatJSON:
	default:
		return &filelog.ConfigurationError{Value: s.Format, Reason: "unknown format"}
	}
	if strings.TrimSpace(s.Directory) == "" {
		return errors.Errorf("directory is required")
	}
	if s.Backend == BackendStream && !strings.HasPrefix(s.Directory, filelog.StreamScheme) {
		return &filelog.ConfigurationError{Value: s.Directory, Reason: "stream backend needs a " + filelog.StreamScheme + " target"}
	}
	if s.Options.FlushFrequency < 0 {
		return errors.Errorf("options.flushFrequency must not be negative, got %d", s.Options.FlushFrequency)
	}
	return nil
}

// ThresholdSeverity returns the validated threshold.
func (s *Settings) ThresholdSeverity() (filelog.Severity, error) {
	return filelog.ParseSeverity(s.Threshold)
}

// FileOptions turns the settings into options for filelog.New.
func (s *Settings) FileOptions() []filelog.Option {
	return []filelog.Option{filelog.WithConfig(s.Options)}
}
