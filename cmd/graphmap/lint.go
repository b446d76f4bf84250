package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"graph-mapper/internal/diagnostic"
	"graph-mapper/internal/mapping"
	"graph-mapper/mapper"
	"graph-mapper/store"
	"graph-mapper/warehouse"
)

var errLint = errors.New("configuration has problems")

var flagSample bool

var lintCmd = &cobra.Command{
	Use:   "lint FILE...",
	Short: "Validate configuration files",
	Long: "Validate the structure of configuration files. With --sample the files are\n" +
		"also applied to the sample shop graph, which resolves type and property names.",
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&flagSample, "sample", false, "resolve the files against the sample store/warehouse types")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		if !lintFile(out, path) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errLint, failed, len(args))
	}

	return nil
}

func lintFile(out io.Writer, path string) bool {
	mf, err := mapping.LoadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}

	diags := mapping.Validate(mf)
	printDiagnostics(out, path, diags)

	if diags.HasErrors() {
		return false
	}

	if !flagSample {
		fmt.Fprintf(out, "%s: ok\n", path)
		return true
	}

	m, err := sampleBuilder(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}

	for _, w := range m.Warnings() {
		fmt.Fprintf(out, "%s: %s\n", path, w)
	}

	fmt.Fprintf(out, "%s: ok, %d pairs\n", path, len(m.Pairs()))

	return true
}

func sampleBuilder(path string) (*mapper.Mapper, error) {
	b := mapper.NewBuilder()
	mapper.RegisterGraph[store.Order, warehouse.Order](b)
	mapper.RegisterGraph[store.Category, warehouse.Category](b)

	if err := b.LoadConfigFile(path); err != nil {
		return nil, err
	}

	return b.Build()
}

func printDiagnostics(out io.Writer, path string, diags *diagnostic.Diagnostics) {
	for _, list := range [][]diagnostic.Diagnostic{diags.Errors, diags.Warnings} {
		for _, d := range list {
			fmt.Fprintf(out, "%s: %s\n", path, d.String())
		}
	}
}
