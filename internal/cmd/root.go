// Package cmd implements the filelog command line.
package cmd

import (
	"github.com/sivaosorg/filelog/config"
	"github.com/spf13/cobra"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "FILELOG"

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "filelog",
		Short: "Append leveled messages to dated log files",
		Long: `filelog writes leveled messages to a log file named after a prefix and
the current date, or to a standard stream, using the same rules as the
filelog library. Settings come from flags, FILELOG_* environment
variables and an optional config file, in that order of precedence.`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringP("config", "c", "", "config file (yaml, json or toml)")
	f.String("backend", config.BackendFile, "backend: file, stream, zap or logrus")
	f.String("dir", "logs", "log directory, or stream://stdout / stream://stderr")
	f.String("threshold", "debug", "least severe level that is written")
	f.String("format", config.FormatText, "zap/logrus output format: text or json")
	f.String("extension", "txt", "log file extension")
	f.String("prefix", "log_", "prefix for dated file names")
	f.String("filename", "", "fixed file name instead of prefix + date")
	f.String("date-format", "", "timestamp layout (Go reference time)")
	f.String("log-format", "", "line template, e.g. '{date} {level} {message}'")
	f.Int("flush-frequency", 0, "sync the file every N writes (0 disables)")
	f.Bool("append-context", true, "append the context block below each line")

	root.AddCommand(newWriteCommand(), newPathCommand(), newLevelsCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// loadSettings resolves settings for cmd from its flags, the environment and
// the config file named by --config.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.NewViperLoader(cfgFile, EnvPrefix).WithFlags(cmd.Flags()).Load()
}
