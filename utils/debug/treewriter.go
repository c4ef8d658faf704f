// Package debug helps to produce human readable dumps of nested structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per depth level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

// Line writes formatted line at depth.
func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Value writes "label: value" line at depth, value is quoted so leading or
// trailing spaces stay visible.
func (tw TreeWriter) Value(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}
