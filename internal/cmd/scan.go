package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/ignore"
	"github.com/iconlens/iconlens/internal/index"
	"github.com/iconlens/iconlens/internal/progress"
	"github.com/iconlens/iconlens/internal/provider"
	"github.com/iconlens/iconlens/internal/types"
	"github.com/iconlens/iconlens/internal/util"
	"github.com/spf13/cobra"
)

// settings is shared by every subcommand; initialized before any init() runs
var settings = config.LoadSettings()

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Build the icon index for a workspace",
	Long: `Scan walks a workspace and builds the full icon index: workspace .svg
files, library icons from the configured bundle and sprite, inline markup,
references, and usages.

Examples:
  iconlens scan /path/to/project
  iconlens scan --exclude "**/fixtures/**" /path/to/project
  iconlens scan --format yaml -o - /path/to/project
  iconlens scan --max-files 10000 --concurrency 16 /path/to/project`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	outputFile := settings.OutputFile
	outputFormat := settings.OutputFormat
	prettyPrint := settings.PrettyPrint
	verbose := settings.Verbose
	debug := settings.Debug
	logLevel := settings.LogLevel.String()
	logFormat := settings.LogFormat
	logFile := settings.LogFile

	scanCmd.Flags().StringVarP(&settings.OutputFile, "output", "o", outputFile, "Output file path ('-' for stdout)")
	scanCmd.Flags().StringVarP(&settings.OutputFormat, "format", "f", outputFormat, "Output format: text, json, yaml")
	scanCmd.Flags().BoolVar(&settings.PrettyPrint, "pretty", prettyPrint, "Pretty print JSON output")
	scanCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", verbose, "Show scan progress")
	scanCmd.Flags().BoolVarP(&settings.Debug, "debug", "d", debug, "Enable debug logging")
	scanCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Additional ignore patterns (can be specified multiple times)")

	scanCmd.Flags().Int("max-files", 0, "Cap on indexed files (default from config)")
	scanCmd.Flags().Int("max-depth", 0, "Cap on traversal depth (default from config)")
	scanCmd.Flags().Int("batch-size", 0, "Files per work batch (default from config)")
	scanCmd.Flags().Int("concurrency", 0, "Concurrent batch workers (default from config)")

	scanCmd.Flags().String("log-level", logLevel, "Log level: debug, info, warn, error")
	scanCmd.Flags().String("log-format", logFormat, "Log format: text or json")
	scanCmd.Flags().String("log-file", logFile, "Log file path (default: stderr)")
}

// configureLogging sets up logging based on command flags
func configureLogging(cmd *cobra.Command) *slog.Logger {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	if level, err := config.ParseLogLevel(logLevel); err == nil {
		settings.LogLevel = level
	}
	if settings.Debug {
		settings.LogLevel = slog.LevelDebug
	}
	settings.LogFormat = logFormat
	settings.LogFile = logFile

	return settings.ConfigureLogger()
}

// resolveWorkspace resolves and validates the workspace root from args
func resolveWorkspace(args []string, logger *slog.Logger) string {
	path := "."
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		logger.Error("Invalid path", "error", err)
		os.Exit(1)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		logger.Error("Path does not exist", "path", absPath)
		os.Exit(1)
	}
	if err == nil && !info.IsDir() {
		logger.Error("Path is not a directory", "path", absPath)
		os.Exit(1)
	}
	return absPath
}

// applyScanFlags folds CLI overrides into the process-wide scan configuration
func applyScanFlags(cmd *cobra.Command, project *config.ProjectConfig) {
	config.SetScannerConfig(project.Scanner)

	var override config.ScannerConfig
	override.MaxFiles, _ = cmd.Flags().GetInt("max-files")
	override.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
	override.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	override.ConcurrencyLimit, _ = cmd.Flags().GetInt("concurrency")
	config.SetScannerConfig(override)
}

// workspace bundles everything a command needs to operate on one root
type workspace struct {
	root     string
	project  *config.ProjectConfig
	matcher  *ignore.Matcher
	loader   *ignore.Loader
	provider types.Provider
	engine   *index.Engine
	logger   *slog.Logger
}

// openWorkspace loads configuration and wires the engine for a root
func openWorkspace(cmd *cobra.Command, args []string) *workspace {
	logger := configureLogging(cmd)
	root := resolveWorkspace(args, logger)

	project, err := config.LoadProjectConfig(root)
	if err != nil {
		logger.Error("Failed to load project config", "error", err)
		os.Exit(1)
	}

	applyScanFlags(cmd, project)

	matcher := ignore.NewMatcher(root)
	loader := ignore.NewLoader(matcher, config.IgnoreFileName, logger)

	// Config and CLI excludes layer on top of the .iconignore patterns and
	// survive watcher-triggered reloads
	if excludes := project.MergeExcludes(settings.ExcludePatterns); len(excludes) > 0 {
		loader.SetExtras(ignore.Compile(excludes))
	}
	loader.Reload()

	prog := progress.New(settings.Verbose, nil)
	fs := provider.NewFSProvider(root)
	store := index.NewStore(root)
	engine := index.NewEngine(store, fs, matcher, project, prog, logger)

	return &workspace{
		root:     root,
		project:  project,
		matcher:  matcher,
		loader:   loader,
		provider: fs,
		engine:   engine,
		logger:   logger,
	}
}

func runScan(cmd *cobra.Command, args []string) {
	if settings.OutputFile == "-" {
		settings.OutputFile = ""
	}

	format := util.NormalizeFormat(settings.OutputFormat)
	if err := util.ValidateOutputFormat(format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ws := openWorkspace(cmd, args)
	fmt.Fprintf(os.Stderr, "Scanning: %s\n", ws.root)

	report, err := ws.engine.Scan(cmd.Context())
	if err != nil {
		ws.logger.Error("Scan failed", "error", err)
		os.Exit(1)
	}

	data, err := renderIndex(ws.engine.Store(), report, format, settings.PrettyPrint)
	if err != nil {
		ws.logger.Error("Failed to render output", "error", err)
		os.Exit(1)
	}

	if settings.OutputFile != "" {
		if err := os.WriteFile(settings.OutputFile, data, 0644); err != nil {
			ws.logger.Error("Failed to write output file", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Index written to %s\n", settings.OutputFile)
	} else {
		fmt.Println(string(data))
	}
}
