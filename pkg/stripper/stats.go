package stripper

import (
	"fmt"
	"time"
)

// Stats captures metrics about a strip operation.
type Stats struct {
	InputBytes      int           `json:"input_bytes"`
	OutputBytes     int           `json:"output_bytes"`
	CommentsRemoved int           `json:"comments_removed"`
	CommentsKept    int           `json:"comments_kept"`
	Duration        time.Duration `json:"duration_ns"`
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{}
}

// ReductionPercent returns the percentage reduction in content size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	return fmt.Sprintf("size: %d -> %d bytes (%.1f%% reduction), comments: %d removed, %d kept, took %v",
		s.InputBytes, s.OutputBytes, s.ReductionPercent(),
		s.CommentsRemoved, s.CommentsKept, s.Duration.Round(time.Microsecond))
}

// Result contains the outcome of a strip operation.
type Result struct {
	// Content is the stripped output. When Error is set it holds the
	// original input unchanged.
	Content string `json:"content"`

	// Stats holds metrics about what was done.
	Stats *Stats `json:"stats"`

	// Error is set only when the span pattern could not be prepared.
	Error error `json:"error,omitempty"`
}
