package types

// Source identifies where an icon entity came from
type Source string

const (
	// SourceWorkspace is a loose .svg file found in the workspace
	SourceWorkspace Source = "workspace"
	// SourceLibrary is an icon recovered from build output (bundle or sprite)
	SourceLibrary Source = "library"
	// SourceInline is markup embedded directly in a source file
	SourceInline Source = "inline"
	// SourceIconify is an icon referencing a remote catalog
	SourceIconify Source = "iconify"
)

// CategoryImgRef tags entities created from <img src="*.svg"> style references
const CategoryImgRef = "img-ref"

// Existence is a tri-state flag for reference entities
type Existence int

const (
	// ExistsUnknown means the target was never resolved
	ExistsUnknown Existence = iota
	// ExistsYes means the referenced file was located
	ExistsYes
	// ExistsNo means the referenced file could not be located
	ExistsNo
)

// Animation holds structured animation metadata recovered from an icon
type Animation struct {
	Type      string `json:"type" yaml:"type"`
	Duration  string `json:"duration" yaml:"duration"`
	Timing    string `json:"timing" yaml:"timing"`
	Iteration string `json:"iteration" yaml:"iteration"`
	Delay     string `json:"delay,omitempty" yaml:"delay,omitempty"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Usage is one detected occurrence of an icon identifier in a source file
type Usage struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"` // 1-based
	Preview string `json:"preview" yaml:"preview"`
}

// IconEntity is one discovered icon, regardless of provenance.
//
// The (Source, Path, Name, Line) tuple is unique within an index. Content is
// populated lazily; Usages describe references to a library icon, never
// occurrences of the entity itself, so reference/inline entities carry
// FilePath+Line instead of a usage list.
type IconEntity struct {
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path" yaml:"path"`
	Source     Source     `json:"source" yaml:"source"`
	Category   string     `json:"category,omitempty" yaml:"category,omitempty"`
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
	Animation  *Animation `json:"animation,omitempty" yaml:"animation,omitempty"`
	Usages     []Usage    `json:"usages,omitempty" yaml:"usages,omitempty"`
	UsageCount int        `json:"usage_count" yaml:"usage_count"`

	// FilePath and Line locate inline markup or a reference occurrence
	FilePath string    `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Line     int       `json:"line,omitempty" yaml:"line,omitempty"`
	Exists   Existence `json:"exists,omitempty" yaml:"exists,omitempty"`
}

// SetUsages replaces the usage list and keeps the derived count consistent
func (e *IconEntity) SetUsages(usages []Usage) {
	e.Usages = usages
	e.UsageCount = len(usages)
}
