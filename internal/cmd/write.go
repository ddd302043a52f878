package cmd

import (
	"fmt"
	"strings"

	"github.com/sivaosorg/filelog"
	"github.com/sivaosorg/filelog/factory"
	"github.com/spf13/cobra"
)

func newWriteCommand() *cobra.Command {
	var (
		level  string
		fields map[string]string
	)
	cmd := &cobra.Command{
		Use:   "write MESSAGE...",
		Short: "Append one message",
		Long: `Append one message at the given level.

Examples:
  # Write an error with context
  filelog write --dir /var/log/app -l error -f user=ada -f attempt=3 "login failed"

  # Write to stderr instead of a file
  filelog write --backend stream --dir stream://stderr "hello"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			severity, err := filelog.ParseSeverity(level)
			if err != nil {
				return err
			}
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			backend, err := factory.Create(*settings)
			if err != nil {
				return err
			}

			var ctx filelog.Fields
			if len(fields) > 0 {
				ctx = make(filelog.Fields, len(fields))
				for k, v := range fields {
					ctx[k] = v
				}
			}
			if err := backend.Log(severity, strings.Join(args, " "), ctx); err != nil {
				_ = backend.Close()
				return err
			}
			if err := backend.Close(); err != nil {
				return err
			}
			if l, ok := backend.(*filelog.Logger); ok && !strings.HasPrefix(l.LogFilePath(), filelog.StreamScheme) {
				fmt.Fprintln(cmd.OutOrStdout(), l.LogFilePath())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", string(filelog.InfoIssuer), "severity of the message")
	cmd.Flags().StringToStringVarP(&fields, "field", "f", nil, "context field key=value (repeatable)")
	return cmd
}
