package util

import (
	"fmt"
	"sort"
	"strings"
)

// ValidOutputFormats defines the supported report formats
var ValidOutputFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

// ValidateOutputFormat checks if the given format is valid
func ValidateOutputFormat(format string) error {
	if !ValidOutputFormats[strings.ToLower(format)] {
		return fmt.Errorf("invalid format: %s. Valid formats are: %s", format, strings.Join(GetValidFormats(), ", "))
	}
	return nil
}

// GetValidFormats returns the supported report formats, sorted
func GetValidFormats() []string {
	formats := make([]string, 0, len(ValidOutputFormats))
	for format := range ValidOutputFormats {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// NormalizeFormat normalizes the format string to lowercase
func NormalizeFormat(format string) string {
	return strings.ToLower(format)
}
