package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GlobalFlags are shared by every subcommand.
type GlobalFlags struct {
	ConfigFile string
	EnvFile    string
	Debug      bool
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("capi failed")
		os.Exit(1)
	}
}

// NewRootCmd returns the capi command tree
func NewRootCmd() *cobra.Command {
	globalFlags := &GlobalFlags{}
	rootCmd := &cobra.Command{
		Use:           "capi",
		Short:         "Send conversion events to the Meta Conversions API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&globalFlags.EnvFile, "env-file", "", "Path to an env file (defaults to .env when present)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "Log user data, line items and outbound requests")

	rootCmd.AddCommand(NewSendCmd(globalFlags))
	return rootCmd
}
