// Package cmd implements the ticksim CLI: a cobra root command plus the
// `run` and `compare` subcommands, grounded on the teacher's
// cmd/root.go (rootCmd, subcommand registration in init(),
// logrus.ParseLevel from a --log flag).
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "ticksim",
	Short: "Deterministic tick-driven OS scheduling simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// logger returns the shared CLI logger, level already applied by
// PersistentPreRunE.
func logger() *logrus.Logger {
	return logrus.StandardLogger()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
