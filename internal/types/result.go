package types

import "time"

// ScanError records a per-file or per-directory failure during a scan.
// Errors are accumulated, never thrown past a scan boundary.
type ScanError struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Message  string `json:"message" yaml:"message"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
}

func (e ScanError) Error() string {
	if e.Code != "" {
		return e.FilePath + ": " + e.Message + " (" + e.Code + ")"
	}
	return e.FilePath + ": " + e.Message
}

// ScanResult is the uniform contract every scan operation returns.
// A scan always produces a result, even if every file failed.
type ScanResult[T any] struct {
	Items        T             `json:"items" yaml:"items"`
	FilesScanned int           `json:"files_scanned" yaml:"files_scanned"`
	ItemsFound   int           `json:"items_found" yaml:"items_found"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	Truncated    bool          `json:"truncated" yaml:"truncated"`
	Errors       []ScanError   `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// AddError appends a scan error built from a path and underlying error
func (r *ScanResult[T]) AddError(path string, err error) {
	r.Errors = append(r.Errors, ScanError{FilePath: path, Message: err.Error()})
}
