// Package stripper removes HTML comment spans from text content.
//
// Comments are matched lexically, not through a DOM: a span runs from a
// literal "<!--" marker to the nearest following "-->", inclusive, and may
// cross newlines. Adjacent comments are separate spans and never coalesce.
package stripper

import (
	"regexp"
	"strings"
	"time"
)

// spanPattern matches a single comment span. The lazy quantifier bounds each
// span at the nearest closing marker so that "<!--a--><!--b-->" is two spans.
const spanPattern = `(?s)<!--.*?-->`

// Stripper removes HTML comment spans from text.
// Construct with New; the zero value strips nothing.
type Stripper struct {
	filter string
	re     *regexp.Regexp
	err    error
}

// New creates a Stripper. When filter is non-empty, only spans containing it
// as a literal, case-sensitive substring are removed; all other spans are
// left byte-for-byte intact. An empty filter removes every span.
func New(filter string) *Stripper {
	re, err := regexp.Compile(spanPattern)
	return &Stripper{
		filter: filter,
		re:     re,
		err:    err,
	}
}

// Name returns the stripper mode for logging.
func (s *Stripper) Name() string {
	if s.filter != "" {
		return "filtered"
	}
	return "all"
}

// Strip returns content with matching comment spans removed.
// On an internal pattern failure the input is returned unchanged.
func (s *Stripper) Strip(content string) string {
	return s.StripWithStats(content).Content
}

// StripWithStats performs removal and returns the stripped content together
// with detailed stats. The filter is applied per span: a span is bounded at
// the nearest closing marker first and only then tested for the filter, so a
// filter can never widen a span across an intervening "-->".
func (s *Stripper) StripWithStats(content string) *Result {
	start := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(content)

	if s.re == nil {
		// Graceful degradation: hand the input back untouched.
		result.Content = content
		result.Error = s.err
		result.Stats.OutputBytes = len(content)
		result.Stats.Duration = time.Since(start)
		return result
	}

	result.Content = s.re.ReplaceAllStringFunc(content, func(span string) string {
		if s.filter != "" && !strings.Contains(span, s.filter) {
			result.Stats.CommentsKept++
			return span
		}
		result.Stats.CommentsRemoved++
		return ""
	})

	result.Stats.OutputBytes = len(result.Content)
	result.Stats.Duration = time.Since(start)
	return result
}

// Strip removes comment spans from content with a one-shot Stripper.
// It is shorthand for New(filter).Strip(content).
func Strip(content, filter string) string {
	return New(filter).Strip(content)
}
