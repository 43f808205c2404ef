package util

import (
	"bytes"
	"fmt"
	"strings"
)

// ContextLines formats the source around a failing line: two lines of
// leading context and a marker on the line itself. Lines are 1-based;
// out-of-range lines yield an empty string.
func ContextLines(src string, errorLine int) string {
	lines := strings.Split(src, "\n")
	if errorLine < 1 || errorLine > len(lines) {
		return ""
	}

	start := errorLine - 2
	if start < 1 {
		start = 1
	}

	var out bytes.Buffer
	for i := start; i <= errorLine; i++ {
		margin := "     "
		if i == errorLine {
			margin = "  >  "
		}
		fmt.Fprintf(&out, "%s%3d | %s\n", margin, i, lines[i-1])
	}
	return out.String()
}
