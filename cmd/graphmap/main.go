// Package main provides graphmap, a CLI to check and normalize mapper
// configuration files.
//
//	graphmap lint config.yaml
//	graphmap lint --sample config.yaml
//	graphmap fmt -w config.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
