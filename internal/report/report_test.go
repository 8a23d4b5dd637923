package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// Test document shaped like a per-file report entry
type testEntry struct {
	Path            string `json:"path" yaml:"path"`
	CommentsRemoved int    `json:"comments_removed" yaml:"comments_removed"`
}

func TestNewWriter_Formats(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*report.JSONWriter"},
		{FormatJSONL, "*report.JSONLWriter"},
		{FormatYAML, "*report.YAMLWriter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := w.(*JSONWriter); !ok {
					t.Errorf("expected %s, got %T", tt.want, w)
				}
			case FormatJSONL:
				if _, ok := w.(*JSONLWriter); !ok {
					t.Errorf("expected %s, got %T", tt.want, w)
				}
			case FormatYAML:
				if _, ok := w.(*YAMLWriter); !ok {
					t.Errorf("expected %s, got %T", tt.want, w)
				}
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected error containing 'unsupported', got %v", err)
	}
}

func TestJSONWriter_SingleDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	entry := testEntry{Path: "site/index.html", CommentsRemoved: 3}
	if err := w.Write(entry); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// Single document should be output directly, not as array
	var result testEntry
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if result.Path != "site/index.html" || result.CommentsRemoved != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestJSONWriter_MultipleDocuments_OutputsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(testEntry{Path: "a.html", CommentsRemoved: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(testEntry{Path: "b.html", CommentsRemoved: 2}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result []testEntry
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(result))
	}
	if result[0].Path != "a.html" || result[1].Path != "b.html" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestJSONWriter_Compact(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(testEntry{Path: "a.html", CommentsRemoved: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected single line in compact output, got %d lines", len(lines))
	}
}

func TestJSONLWriter_SeparateLines(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Write(testEntry{Path: "a.html", CommentsRemoved: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(testEntry{Path: "b.html", CommentsRemoved: 2}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	// Each line should be valid JSON on its own
	for i, line := range lines {
		var entry testEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestYAMLWriter_SingleDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(testEntry{Path: "site/index.html", CommentsRemoved: 3}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result testEntry
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if result.Path != "site/index.html" || result.CommentsRemoved != 3 {
		t.Errorf("unexpected result: %+v", result)
	}

	if !strings.Contains(buf.String(), "path:") {
		t.Errorf("expected YAML keys, got %q", buf.String())
	}
}

func TestNewWriter_WithOptions(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON, WithPretty(false), WithIndent(""))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Write(testEntry{Path: "a.html", CommentsRemoved: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	output := strings.TrimSpace(buf.String())
	if strings.Contains(output, "\n") {
		t.Errorf("expected compact output, got %q", output)
	}
}

func TestWithIndent_Custom(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON, WithIndent("\t"))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Write(testEntry{Path: "a.html", CommentsRemoved: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if !strings.Contains(buf.String(), "\t") {
		t.Errorf("expected tab indentation, got %q", buf.String())
	}
}
