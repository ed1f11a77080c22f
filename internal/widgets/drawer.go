package widgets

import (
	"fmt"
	"io"
	"strings"
)

// Section is one titled block of a drawer. Body is printed indented; empty
// sections are skipped.
type Section struct {
	Title string
	Body  string
}

// Field is one "key: value" line at the top of a drawer.
type Field struct {
	Key   string
	Value string
}

// Drawer renders a detail view.
func Drawer(w io.Writer, title string, fields []Field, sections ...Section) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", title)
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key))
	}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width+1, f.Key+":", f.Value)
	}
	for _, s := range sections {
		if strings.TrimSpace(s.Body) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", s.Title)
		for _, line := range strings.Split(strings.TrimRight(s.Body, "\n"), "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
