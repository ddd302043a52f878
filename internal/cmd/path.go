package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sivaosorg/filelog"
	"github.com/spf13/cobra"
)

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file today's messages would go to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if strings.HasPrefix(settings.Directory, filelog.StreamScheme) {
				fmt.Fprintln(cmd.OutOrStdout(), settings.Directory)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(settings.Directory, filelog.FileName(settings.Options, time.Now())))
			return nil
		},
	}
}

func newLevelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List severities with their priorities",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range filelog.Severities() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", s.Priority(), s)
			}
		},
	}
}
