package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iconlens/iconlens/internal/index"
	"github.com/iconlens/iconlens/internal/metadata"
	"github.com/iconlens/iconlens/internal/types"
)

// indexDocument is the serialized shape of a built index
type indexDocument struct {
	Metadata *metadata.ScanMetadata `json:"metadata" yaml:"metadata"`
	Icons    []*types.IconEntity    `json:"icons" yaml:"icons"`
	Errors   []types.ScanError      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// renderIndex serializes the store and scan report in the requested format
func renderIndex(store *index.Store, report *index.Report, format string, prettyPrint bool) ([]byte, error) {
	doc := indexDocument{
		Metadata: report.Metadata,
		Icons:    store.All(),
		Errors:   report.Errors,
	}

	switch format {
	case "json":
		if prettyPrint {
			return json.MarshalIndent(doc, "", "  ")
		}
		return json.Marshal(doc)
	case "yaml":
		return yaml.Marshal(doc)
	case "text":
		return []byte(renderText(store, report)), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// renderText produces a human-oriented summary grouped by category
func renderText(store *index.Store, report *index.Report) string {
	var sb strings.Builder

	meta := report.Metadata
	fmt.Fprintf(&sb, "Icon index for %s\n", meta.ScanPath)
	fmt.Fprintf(&sb, "  workspace: %d  library: %d  inline: %d  refs: %d\n",
		meta.WorkspaceIcons, meta.LibraryIcons, meta.InlineIcons, meta.ReferenceIcons)
	fmt.Fprintf(&sb, "  usages: %d  errors: %d  duration: %dms\n",
		meta.UsageCount, meta.ErrorCount, meta.DurationMs)
	if meta.Truncated {
		sb.WriteString("  (truncated: scan limits reached)\n")
	}
	sb.WriteString("\n")

	groups := store.Categories()
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(&sb, "%s (%d)\n", key, len(groups[key]))
		for _, entity := range groups[key] {
			fmt.Fprintf(&sb, "  %s\n", describeEntity(entity))
		}
	}

	if len(report.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, scanErr := range report.Errors {
			fmt.Fprintf(&sb, "  %s\n", scanErr.Error())
		}
	}

	return sb.String()
}

// describeEntity renders one entity as a single summary line
func describeEntity(entity *types.IconEntity) string {
	var parts []string
	parts = append(parts, entity.Name)

	switch entity.Source {
	case types.SourceLibrary:
		if entity.UsageCount > 0 {
			parts = append(parts, fmt.Sprintf("%d usages", entity.UsageCount))
		} else {
			parts = append(parts, "unused")
		}
		if entity.Animation != nil {
			parts = append(parts, "animated/"+entity.Animation.Type)
		}
	case types.SourceInline:
		parts = append(parts, fmt.Sprintf("%s:%d", entity.FilePath, entity.Line))
	default:
		if entity.Category == types.CategoryImgRef {
			parts = append(parts, fmt.Sprintf("%s:%d", entity.FilePath, entity.Line))
			if entity.Exists == types.ExistsNo {
				parts = append(parts, "missing target")
			}
		}
	}

	return strings.Join(parts, "  ")
}
