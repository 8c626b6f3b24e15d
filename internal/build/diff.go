package build

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders the changed lines between the output on disk and the
// freshly compiled one, "-" for removed and "+" for added lines.
func lineDiff(onDisk, compiled string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(onDisk, compiled)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
