package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var usagesCmd = &cobra.Command{
	Use:   "usages <icon-name> [path]",
	Short: "Show where an icon is referenced",
	Long: `Usages builds the index and prints every detected reference to the named
icon across the workspace's source files, one file:line per match.

Exit status is 1 when the icon is unknown, so the command doubles as an
existence check in scripts.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runUsages,
}

func init() {
	rootCmd.AddCommand(usagesCmd)

	usagesCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show scan progress")
	usagesCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Additional ignore patterns")
	usagesCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	usagesCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	usagesCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")
}

func runUsages(cmd *cobra.Command, args []string) {
	name := args[0]
	ws := openWorkspace(cmd, args[1:])

	if _, err := ws.engine.Scan(cmd.Context()); err != nil {
		ws.logger.Error("Scan failed", "error", err)
		os.Exit(1)
	}

	store := ws.engine.Store()
	usages, known := store.Usages(name)
	if !known && len(store.ByName(name)) == 0 {
		fmt.Fprintf(os.Stderr, "Unknown icon: %s\n", name)
		os.Exit(1)
	}

	if len(usages) == 0 {
		fmt.Printf("%s: no usages found\n", name)
		return
	}

	fmt.Printf("%s: %d usages\n", name, len(usages))
	for _, usage := range usages {
		fmt.Printf("  %s:%d  %s\n", usage.File, usage.Line, usage.Preview)
	}
}
