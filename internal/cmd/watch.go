package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iconlens/iconlens/internal/ignore"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rebuild the index continuously",
	Long: `Watch keeps the index current: it rebuilds on a fixed interval and
immediately when the ignore file changes, so edits to .iconignore take
effect without a restart. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "Rescan interval")
	watchCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show scan progress")
	watchCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Additional ignore patterns")
	watchCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	watchCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	watchCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")
}

func runWatch(cmd *cobra.Command, args []string) {
	ws := openWorkspace(cmd, args)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rescan := make(chan struct{}, 1)
	watcher, err := ignore.NewWatcher(ws.loader, func() {
		select {
		case rescan <- struct{}{}:
		default:
		}
	}, ws.logger)
	if err != nil {
		ws.logger.Error("Failed to start ignore watcher", "error", err)
		os.Exit(1)
	}
	defer watcher.Close()
	defer ws.engine.Store().Shutdown()

	fmt.Fprintf(os.Stderr, "Watching: %s (rescan every %s)\n", ws.root, watchInterval)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	build := func() {
		report, err := ws.engine.Refresh(ctx)
		if err != nil {
			ws.logger.Error("Rebuild failed", "error", err)
			return
		}
		meta := report.Metadata
		fmt.Fprintf(os.Stderr, "[%s] indexed %d icons (%d errors, %dms)\n",
			time.Now().Format("15:04:05"),
			meta.WorkspaceIcons+meta.LibraryIcons+meta.InlineIcons+meta.ReferenceIcons,
			meta.ErrorCount, meta.DurationMs)
	}

	build()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "Stopping")
			return
		case <-ticker.C:
			build()
		case <-rescan:
			build()
		}
	}
}
