// Package debug formats readable outlines for troubleshooting output.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines.
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

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Node writes name followed by non-empty key=value pairs, values quoted.
func (tw TreeWriter) Node(depth int, name string, kv ...string) {
	tw.w.WriteString(strings.Repeat(indent, depth))
	tw.w.WriteString(name)
	for i := 0; i+1 < len(kv); i += 2 {
		if len(kv[i+1]) == 0 {
			continue
		}
		tw.w.WriteByte(' ')
		tw.w.WriteString(kv[i])
		tw.w.WriteByte('=')
		tw.w.WriteString(strconv.Quote(kv[i+1]))
	}
	tw.w.WriteByte('\n')
}
