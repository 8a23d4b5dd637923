package decomment

import "time"

// FileResult records the outcome of processing a single file.
type FileResult struct {
	// Path is the input file as it was discovered.
	Path string `json:"path" yaml:"path"`

	// Output is the path the rewritten content was written to. Empty when
	// the file was skipped or failed.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Charset is the encoding the file was decoded and re-encoded with.
	Charset string `json:"charset,omitempty" yaml:"charset,omitempty"`

	// CharsetFallback is true when detection could not produce a usable
	// charset and UTF-8 was assumed.
	CharsetFallback bool `json:"charset_fallback,omitempty" yaml:"charset_fallback,omitempty"`

	CommentsRemoved int `json:"comments_removed" yaml:"comments_removed"`
	CommentsKept    int `json:"comments_kept,omitempty" yaml:"comments_kept,omitempty"`
	BytesIn         int `json:"bytes_in" yaml:"bytes_in"`
	BytesOut        int `json:"bytes_out" yaml:"bytes_out"`

	// Skipped is true when the file was deliberately left alone, with the
	// reason in SkipReason.
	Skipped    bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`

	// Error holds the failure message for this file. A failed file never
	// aborts the rest of the run.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	DurationMs int64 `json:"duration_ms" yaml:"duration_ms"`
}

// Summary aggregates the outcome of a whole run.
type Summary struct {
	Path      string    `json:"path" yaml:"path"`
	OutputDir string    `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Recursive bool      `json:"recursive" yaml:"recursive"`
	Filter    string    `json:"filter,omitempty" yaml:"filter,omitempty"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	FilesProcessed  int   `json:"files_processed" yaml:"files_processed"`
	FilesSkipped    int   `json:"files_skipped" yaml:"files_skipped"`
	FilesFailed     int   `json:"files_failed" yaml:"files_failed"`
	CommentsRemoved int   `json:"comments_removed" yaml:"comments_removed"`
	CommentsKept    int   `json:"comments_kept" yaml:"comments_kept"`
	BytesIn         int64 `json:"bytes_in" yaml:"bytes_in"`
	BytesOut        int64 `json:"bytes_out" yaml:"bytes_out"`
	DurationMs      int64 `json:"duration_ms" yaml:"duration_ms"`

	Files []FileResult `json:"files" yaml:"files"`
}

// HasFailures reports whether any file in the run failed.
func (s *Summary) HasFailures() bool {
	return s.FilesFailed > 0
}

func (s *Summary) add(r *FileResult) {
	s.Files = append(s.Files, *r)
	switch {
	case r.Error != "":
		s.FilesFailed++
	case r.Skipped:
		s.FilesSkipped++
	default:
		s.FilesProcessed++
		s.CommentsRemoved += r.CommentsRemoved
		s.CommentsKept += r.CommentsKept
		s.BytesIn += int64(r.BytesIn)
		s.BytesOut += int64(r.BytesOut)
	}
}
