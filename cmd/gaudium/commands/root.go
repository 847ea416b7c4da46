// SPDX-License-Identifier: Unlicense OR MIT

// Package commands implements the gaudium command line.
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gaudium.org/internal/log"
)

var logLevel string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gaudium",
		Short:         "Watch, record and replay input events",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if logLevel == "" {
				return nil
			}
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides $"+log.EnvLevel+")")
	cmd.AddCommand(
		newWatchCmd(),
		newReplayCmd(),
		newSessionsCmd(),
	)
	return cmd
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
