package main

import (
	"github.com/spf13/cobra"

	"graph-mapper/internal/mapping"
)

var flagWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Print a configuration file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "rewrite the file instead of printing it")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	mf, err := mapping.LoadFile(args[0])
	if err != nil {
		return err
	}

	mapping.Normalize(mf)

	if flagWrite {
		return mapping.WriteFile(mf, args[0])
	}

	data, err := mapping.Marshal(mf)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
