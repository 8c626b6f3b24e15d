package build

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yacobolo/jadzia"
)

// Format selects what each rule file compiles to.
type Format string

const (
	FormatCSS  Format = "css"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from configuration
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSS, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatCSS, nil
	}
	return "", fmt.Errorf("unknown output format %q (want css, json or yaml)", s)
}

// Ext returns the output file extension, dot included.
func (f Format) Ext() string {
	if f == "" {
		return ".css"
	}
	return "." + string(f)
}

// Config holds build configuration
type Config struct {
	SourceDir string   // Directory with rule files (default ".")
	Includes  []string // Glob patterns relative to SourceDir
	OutputDir string   // Mirror of SourceDir receiving outputs; empty writes next to each source
	Format    Format
	Check     bool   // Compare outputs with what is on disk instead of writing
	Bundle    string // Compile all rule files into this single file

	Options []jadzia.Option // Compiler options, applied over jadzia.DefaultOptions
	Logger  *zap.Logger

	// Debounce delays watch rebuilds so bursts of events cause one build.
	Debounce time.Duration
}

// DefaultIncludes are the patterns used when Config.Includes is empty.
var DefaultIncludes = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

func (c Config) withDefaults() Config {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if len(c.Includes) == 0 {
		c.Includes = DefaultIncludes
	}
	if c.Format == "" {
		c.Format = FormatCSS
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Debounce <= 0 {
		c.Debounce = 100 * time.Millisecond
	}
	return c
}

// validate rejects configurations whose outputs would land on top of the
// rule files they are compiled from.
func (c Config) validate() error {
	if c.Format != FormatCSS && c.OutputDir == "" && c.Bundle == "" {
		return fmt.Errorf("format %s needs an output dir or a bundle, outputs next to sources would be read back as rule files", c.Format)
	}
	return nil
}

// Result contains build statistics and the issues found along the way
type Result struct {
	FilesScanned   int
	FilesSkipped   int // Matched but gitignored or inside the output dir
	FilesWritten   int
	FilesUnchanged int
	Outputs        []string
	Issues         []Issue
}

// Stale returns the number of outputs check mode found out of date.
func (r *Result) Stale() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == IssueStale {
			n++
		}
	}
	return n
}

// Errors returns the number of error-severity issues.
func (r *Result) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}
