// Package cmd wires the iconlens CLI: scan, list, usages and watch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "iconlens",
	Short: "SVG icon indexer for source trees",
	Long: `Iconlens builds a unified index of every icon in a project: loose .svg
files, icons recovered from generated bundle and sprite output, inline <svg>
markup, and *.svg references in source files, together with cross-file usages
of each icon identifier.

Scanning respects a .iconignore file at the workspace root and the optional
.iconlens.yml project configuration.`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
