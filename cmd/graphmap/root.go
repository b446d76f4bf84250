package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "graphmap",
	Short:         "Check and normalize graph mapper configuration files",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}
