// Package progress decouples scan progress reporting from scan control flow.
// Scanners stay pure functions of (config, filesystem); progress is a
// side-channel consumed by whatever front-end is attached.
package progress

import (
	"fmt"
	"io"
	"os"
)

// Phase identifies where in its lifecycle a scan currently is
type Phase string

const (
	PhasePreparing  Phase = "preparing"
	PhaseScanning   Phase = "scanning"
	PhaseProcessing Phase = "processing"
	PhaseComplete   Phase = "complete"
)

// Report is one progress update, emitted at batch boundaries
type Report struct {
	Phase       Phase
	Processed   int
	Total       int     // zero when unknown
	Percentage  float64 // derived; zero when Total is unknown
	CurrentFile string
}

// Handler processes reports and produces output
type Handler interface {
	Handle(report Report)
}

// Reporter is the interface scanners use to emit progress
type Reporter interface {
	Report(report Report)
}

// Progress gates reports behind an enabled flag and fans them to a handler
type Progress struct {
	enabled bool
	handler Handler
}

// New creates a progress reporter; a nil handler falls back to stderr lines
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{enabled: enabled, handler: handler}
}

// Report sends a report to the handler (only if enabled)
func (p *Progress) Report(report Report) {
	if p == nil || !p.enabled {
		return
	}
	if report.Total > 0 {
		report.Percentage = float64(report.Processed) / float64(report.Total) * 100
	}
	p.handler.Handle(report)
}

// Preparing reports the pre-scan phase
func (p *Progress) Preparing() {
	p.Report(Report{Phase: PhasePreparing})
}

// Scanning reports traversal progress with cumulative counts
func (p *Progress) Scanning(processed, total int) {
	p.Report(Report{Phase: PhaseScanning, Processed: processed, Total: total})
}

// Processing reports per-file work after traversal
func (p *Progress) Processing(processed, total int, currentFile string) {
	p.Report(Report{Phase: PhaseProcessing, Processed: processed, Total: total, CurrentFile: currentFile})
}

// Complete reports the end of a scan
func (p *Progress) Complete(processed int) {
	p.Report(Report{Phase: PhaseComplete, Processed: processed})
}

// SimpleHandler outputs reports as plain lines
type SimpleHandler struct {
	writer io.Writer
}

// NewSimpleHandler creates a line-oriented handler
func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{writer: writer}
}

func (h *SimpleHandler) Handle(report Report) {
	switch report.Phase {
	case PhasePreparing:
		fmt.Fprintf(h.writer, "[SCAN] Preparing\n")
	case PhaseScanning:
		if report.Total > 0 {
			fmt.Fprintf(h.writer, "[SCAN] Scanning: %d/%d (%.0f%%)\n", report.Processed, report.Total, report.Percentage)
		} else {
			fmt.Fprintf(h.writer, "[SCAN] Scanning: %d\n", report.Processed)
		}
	case PhaseProcessing:
		if report.CurrentFile != "" {
			fmt.Fprintf(h.writer, "[PROC] %d/%d %s\n", report.Processed, report.Total, report.CurrentFile)
		} else {
			fmt.Fprintf(h.writer, "[PROC] %d/%d\n", report.Processed, report.Total)
		}
	case PhaseComplete:
		fmt.Fprintf(h.writer, "[SCAN] Complete: %d processed\n", report.Processed)
	}
}

// NullHandler discards all reports (for disabled verbose mode)
type NullHandler struct{}

// NewNullHandler creates a handler that does nothing
func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

func (h *NullHandler) Handle(Report) {}
