package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader defines the interface for loading settings.
type Loader interface {
	Load() (*Settings, error)
}

// ViperLoader implements Loader using Viper.
// Precedence, highest first: flags, environment, config file, defaults.
type ViperLoader struct {
	configFile string
	envPrefix  string
	flags      *pflag.FlagSet
}

// NewViperLoader creates a new ViperLoader.
// configFile: path to a configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "FILELOG")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// WithFlags binds the known command-line flags found in fs.
func (l *ViperLoader) WithFlags(fs *pflag.FlagSet) *ViperLoader {
	if l == nil {
		return l
	}
	l.flags = fs
	return l
}

// Load reads and validates the settings.
func (l *ViperLoader) Load() (*Settings, error) {
	v := viper.New()

	l.setDefaults(v, DefaultSettings())

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", l.configFile)
		}
	}

	v.SetEnvPrefix(l.envPrefix)
	l.bindEnvVars(v)

	if err := l.bindFlags(v); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s, withFalsyStrings); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &s, nil
}

func withFalsyStrings(c *mapstructure.DecoderConfig) {
	c.DecodeHook = mapstructure.ComposeDecodeHookFunc(c.DecodeHook, falsyStringHook)
}

func (l *ViperLoader) setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("backend", d.Backend)
	v.SetDefault("directory", d.Directory)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("format", d.Format)

	v.SetDefault("options.extension", d.Options.Extension)
	v.SetDefault("options.dateFormat", d.Options.DateFormat)
	v.SetDefault("options.filename", d.Options.Filename)
	v.SetDefault("options.flushFrequency", d.Options.FlushFrequency)
	v.SetDefault("options.prefix", d.Options.Prefix)
	v.SetDefault("options.logFormat", d.Options.LogFormat)
	v.SetDefault("options.appendContext", d.Options.AppendContext)
}

// bindEnvVars explicitly binds environment variables for nested keys
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	v.BindEnv("backend", l.prefixedEnv("BACKEND"))
	v.BindEnv("directory", l.prefixedEnv("DIRECTORY"), l.prefixedEnv("DIR"))
	v.BindEnv("threshold", l.prefixedEnv("THRESHOLD"), l.prefixedEnv("LEVEL"))
	v.BindEnv("format", l.prefixedEnv("FORMAT"))

	v.BindEnv("options.extension", l.prefixedEnv("EXTENSION"))
	v.BindEnv("options.dateFormat", l.prefixedEnv("DATE_FORMAT"))
	v.BindEnv("options.filename", l.prefixedEnv("FILENAME"))
	v.BindEnv("options.flushFrequency", l.prefixedEnv("FLUSH_FREQUENCY"))
	v.BindEnv("options.prefix", l.prefixedEnv("PREFIX"))
	v.BindEnv("options.logFormat", l.prefixedEnv("LOG_FORMAT"))
	v.BindEnv("options.appendContext", l.prefixedEnv("APPEND_CONTEXT"))
}

// flagKeys maps flag names onto settings keys.
var flagKeys = map[string]string{
	"backend":         "backend",
	"dir":             "directory",
	"threshold":       "threshold",
	"format":          "format",
	"extension":       "options.extension",
	"date-format":     "options.dateFormat",
	"filename":        "options.filename",
	"flush-frequency": "options.flushFrequency",
	"prefix":          "options.prefix",
	"log-format":      "options.logFormat",
	"append-context":  "options.appendContext",
}

func (l *ViperLoader) bindFlags(v *viper.Viper) error {
	if l.flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := l.flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

func (l *ViperLoader) prefixedEnv(name string) string {
	if l.envPrefix == "" {
		return name
	}
	return strings.ToUpper(l.envPrefix) + "_" + name
}
