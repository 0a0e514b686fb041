package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"
)

// Settings holds all indexer configuration resolved from defaults,
// environment variables and CLI flags.
type Settings struct {
	// Output settings
	OutputFile   string
	OutputFormat string
	PrettyPrint  bool

	// Scan behavior
	ExcludePatterns []string
	Verbose         bool
	Debug           bool

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		OutputFile:      "icon-index.json",
		OutputFormat:    "json",
		PrettyPrint:     true,
		ExcludePatterns: []string{},
		Verbose:         false,
		Debug:           false,
		LogLevel:        slog.LevelError, // only errors by default
		LogFormat:       "text",
		LogFile:         "", // empty = stderr
	}
}

// LoadSettings creates settings from defaults and applies environment variable overrides
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if outputFile := os.Getenv("ICONLENS_OUTPUT"); outputFile != "" {
		settings.OutputFile = outputFile
	}

	if format := os.Getenv("ICONLENS_FORMAT"); format != "" {
		settings.OutputFormat = strings.ToLower(format)
	}

	if excludePatterns := os.Getenv("ICONLENS_EXCLUDE"); excludePatterns != "" {
		settings.ExcludePatterns = strings.Split(excludePatterns, ",")
		for i, pattern := range settings.ExcludePatterns {
			settings.ExcludePatterns[i] = strings.TrimSpace(pattern)
		}
	}

	if pretty := os.Getenv("ICONLENS_PRETTY"); pretty != "" {
		settings.PrettyPrint = strings.ToLower(pretty) == "true"
	}

	if verbose := os.Getenv("ICONLENS_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if debug := os.Getenv("ICONLENS_DEBUG"); debug != "" {
		settings.Debug = strings.ToLower(debug) == "true"
	}

	if logLevel := os.Getenv("ICONLENS_LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("ICONLENS_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("ICONLENS_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	return settings
}

// ParseLogLevel converts string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up a logger based on settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
