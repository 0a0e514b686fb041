package ignore

import (
	"bufio"
	"os"
	"path/filepath"

	"log/slog"
)

// Loader reads the ignore-pattern file at the workspace root and feeds a
// Matcher. A missing or unreadable file yields an empty pattern set -
// everything is included - never an error surfaced to the caller.
type Loader struct {
	matcher  *Matcher
	fileName string
	extras   []Pattern
	logger   *slog.Logger
}

// NewLoader creates a loader for the named pattern file (e.g. ".iconignore")
func NewLoader(matcher *Matcher, fileName string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{matcher: matcher, fileName: fileName, logger: logger}
}

// FilePath returns the absolute path of the pattern file
func (l *Loader) FilePath() string {
	return filepath.Join(l.matcher.Root(), l.fileName)
}

// SetExtras registers patterns layered on top of the file's patterns
// (project config and CLI excludes). Extras survive every reload; set them
// before a watcher starts driving Reload.
func (l *Loader) SetExtras(patterns []Pattern) {
	l.extras = patterns
}

// Reload re-reads the pattern file and atomically replaces the matcher's
// pattern set with the file's patterns plus the layered extras.
func (l *Loader) Reload() {
	lines, err := readLines(l.FilePath())
	if err != nil {
		l.logger.Debug("No ignore file loaded", "path", l.FilePath(), "error", err)
		l.matcher.SetPatterns(l.extras)
		return
	}

	patterns := append(Compile(lines), l.extras...)
	l.matcher.SetPatterns(patterns)
	l.logger.Debug("Loaded ignore patterns", "path", l.FilePath(), "count", len(patterns))
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
