package build

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
)

// Reporter prints build issues and summaries
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// ShouldUseColors resolves a colour mode ("always", "never" or "auto") for f.
func ShouldUseColors(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintIssues outputs issues sorted by file, line and column
func (r *Reporter) PrintIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue: file:line:col: message (kind)
func (r *Reporter) printIssue(issue Issue) {
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	text := issue.Text
	if issue.Severity == SeverityWarning {
		text = RenderStyle(StyleYellow, "warning: ", r.useColors) + text
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, " ("+issue.Kind+")", r.useColors))

	if len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}

	if issue.Diff != "" {
		for _, line := range strings.Split(strings.TrimSuffix(issue.Diff, "\n"), "\n") {
			style := StyleGreen
			if strings.HasPrefix(line, "-") {
				style = StyleRed
			}
			fmt.Fprintf(r.w, "\t%s\n", RenderStyle(style, line, r.useColors))
		}
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column,
// keeping tabs of the source line so the caret lines up.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := min(column-1, len(sourceLine))

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary outputs counts for a finished build
func (r *Reporter) PrintSummary(result *Result, check bool) {
	errors := result.Errors()
	warnings := len(result.Issues) - errors

	if len(result.Issues) > 0 {
		fmt.Fprintln(r.w, "")
	}

	switch {
	case errors > 0 && check && result.Stale() > 0:
		fmt.Fprintln(r.w, RenderStyle(StyleRed, fmt.Sprintf("%s, %s out of date",
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(result.Stale(), "output", "outputs")), r.useColors))
	case errors > 0:
		fmt.Fprintln(r.w, RenderStyle(StyleRed, fmt.Sprintf("%s, %s",
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings")), r.useColors))
	case check:
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, fmt.Sprintf("%s up to date",
			pluralizeCount(result.FilesUnchanged, "output", "outputs")), r.useColors))
	default:
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, fmt.Sprintf("Compiled %s (%d written, %d unchanged)",
			pluralizeCount(result.FilesScanned, "file", "files"),
			result.FilesWritten, result.FilesUnchanged), r.useColors))
	}

	if result.Stale() > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: run jadzia build to update the outputs", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
