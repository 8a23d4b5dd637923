// preview_strip.go - Preview which comments decomment would remove from a file
//
// Usage: go run scripts/preview_strip.go [-s filter] <file>
//
// Example:
//   go run scripts/preview_strip.go page.html
//   go run scripts/preview_strip.go -s "DEBUG" templates/index.tpl

package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jmylchreest/decomment/pkg/stripper"
)

var filter = flag.String("s", "", "only preview comments containing this literal text")

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("Usage: go run scripts/preview_strip.go [-s filter] <file>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  go run scripts/preview_strip.go page.html")
		fmt.Println("  go run scripts/preview_strip.go -s \"DEBUG\" templates/index.tpl")
		os.Exit(1)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	content := string(data)

	fmt.Printf("File: %s (%d bytes)\n\n", path, len(content))

	// List every comment span with the decision the stripper would make
	spans := regexp.MustCompile(`(?s)<!--.*?-->`).FindAllString(content, -1)
	if len(spans) == 0 {
		fmt.Println("No comments found.")
		return
	}

	for i, span := range spans {
		verdict := "REMOVE"
		if *filter != "" && !strings.Contains(span, *filter) {
			verdict = "KEEP  "
		}
		fmt.Printf("%3d  %s  %s\n", i+1, verdict, preview(span))
	}

	result := stripper.New(*filter).StripWithStats(content)
	fmt.Println()
	fmt.Println(result.Stats)
}

// preview flattens a span to a single trimmed line for display.
func preview(span string) string {
	flat := strings.Join(strings.Fields(span), " ")
	if len(flat) > 72 {
		flat = flat[:69] + "..."
	}
	return flat
}
