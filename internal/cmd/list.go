package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/iconlens/iconlens/internal/cache"
	"github.com/iconlens/iconlens/internal/types"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var listAnalyze bool

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List indexed icons grouped by category",
	Long: `List scans a workspace and prints every indexed icon grouped under its
category key. With --analyze, workspace files are additionally classified
(rasterized conversion, embedded animation) from their content.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listAnalyze, "analyze", false, "Analyze workspace file content (colors, animation)")
	listCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show scan progress")
	listCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Additional ignore patterns")
	listCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	listCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	listCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")
}

// styled applies a lipgloss style only when stdout is a terminal
func styled(style lipgloss.Style, text string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return text
	}
	return style.Render(text)
}

func runList(cmd *cobra.Command, args []string) {
	ws := openWorkspace(cmd, args)

	if _, err := ws.engine.Scan(cmd.Context()); err != nil {
		ws.logger.Error("Scan failed", "error", err)
		os.Exit(1)
	}

	var contentCache *cache.ContentCache
	if listAnalyze {
		contentCache = newWorkspaceCache(ws)
	}

	groups := ws.engine.Store().Categories()
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s\n", styled(headerStyle, fmt.Sprintf("%s (%d)", key, len(groups[key]))))
		for _, entity := range groups[key] {
			printEntity(entity, contentCache)
		}
		fmt.Println()
	}
}

// newWorkspaceCache builds a content cache warmed with the workspace files
func newWorkspaceCache(ws *workspace) *cache.ContentCache {
	contentCache := cache.New(ws.provider, ws.project.MaxCacheEntries(), ws.project.RasterizedColorThreshold(), ws.logger)

	files := ws.engine.Store().WorkspaceFiles()
	paths := make([]string, 0, len(files))
	for _, entity := range files {
		paths = append(paths, entity.Path)
	}
	contentCache.PreloadBatch(paths)

	return contentCache
}

func printEntity(entity *types.IconEntity, contentCache *cache.ContentCache) {
	line := "  " + styled(nameStyle, entity.Name)

	switch entity.Source {
	case types.SourceLibrary:
		if entity.UsageCount > 0 {
			line += styled(dimStyle, fmt.Sprintf("  %d usages", entity.UsageCount))
		} else {
			line += styled(warningStyle, "  unused")
		}
	case types.SourceInline:
		line += styled(dimStyle, fmt.Sprintf("  %s:%d", entity.FilePath, entity.Line))
	default:
		if entity.Category == types.CategoryImgRef {
			line += styled(dimStyle, fmt.Sprintf("  %s:%d", entity.FilePath, entity.Line))
			if entity.Exists == types.ExistsNo {
				line += styled(warningStyle, "  missing target")
			}
		} else if contentCache != nil {
			if contentCache.IsRasterized(entity.Path) {
				line += styled(warningStyle, "  rasterized")
			}
			if animation := contentCache.AnimationType(entity.Path); animation != "" {
				line += styled(dimStyle, "  animated/"+animation)
			}
		}
	}

	fmt.Println(line)
}
