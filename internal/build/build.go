// Package build compiles directories of rule files into stylesheets.
package build

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/jadzia"
	"github.com/yacobolo/jadzia/internal/rulefile"
)

// Build is the main entry point. It compiles every rule file matched by cfg
// and writes (or, in check mode, verifies) the outputs. Problems with single
// files are collected as issues and also returned, combined, as the error;
// the build carries on with the remaining files.
func Build(cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	files, stats, err := Discover(cfg)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result := &Result{
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
	}
	log.Debug("Found rule files",
		zap.Int("count", len(files)),
		zap.Int("skipped", stats.FilesSkipped))

	var errs error
	var bundle jadzia.List
	for _, file := range files {
		log.Debug("Compiling", zap.String("file", file))

		tree, err := result.load(file)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if cfg.Bundle != "" {
			// Compile each file alone first so failures point at their file
			if _, err := jadzia.ToObject(tree, cfg.Options...); err != nil {
				errs = multierr.Append(errs, result.convertFailed(file, err))
				continue
			}
			bundle = append(bundle, tree)
			continue
		}

		out := outputPath(cfg, file)
		if samePath(out, file) {
			errs = multierr.Append(errs, result.convertFailed(file, fmt.Errorf("output %s would overwrite its rule file", out)))
			continue
		}

		content, err := render(cfg, tree)
		if err != nil {
			errs = multierr.Append(errs, result.convertFailed(file, err))
			continue
		}
		errs = multierr.Append(errs, result.emit(cfg, out, content))
	}

	if cfg.Bundle != "" && errs == nil {
		content, err := render(cfg, bundle)
		if err != nil {
			errs = multierr.Append(errs, result.convertFailed(cfg.Bundle, err))
		} else {
			errs = multierr.Append(errs, result.emit(cfg, cfg.Bundle, content))
		}
	}

	log.Debug("Build finished",
		zap.Int("written", result.FilesWritten),
		zap.Int("unchanged", result.FilesUnchanged),
		zap.Int("issues", len(result.Issues)))

	return result, errs
}

// load decodes one rule file, recording read and decode failures as issues.
func (r *Result) load(file string) (jadzia.Node, error) {
	tree, err := rulefile.LoadFile(file)
	if err != nil {
		issue := Issue{
			Kind:     IssueDecode,
			Text:     err.Error(),
			Severity: SeverityError,
			Pos:      IssuePos{Filename: file},
		}
		var syntaxErr *rulefile.SyntaxError
		if errors.As(err, &syntaxErr) {
			issue.Text = syntaxErr.Msg
			issue.Pos.Line = syntaxErr.Line
			issue.Pos.Column = syntaxErr.Column
			// #nosec G304 - path comes from the configured include patterns
			if data, readErr := os.ReadFile(file); readErr == nil {
				issue.SourceLines = sourceLines(data, syntaxErr.Line)
			}
		}
		r.Issues = append(r.Issues, issue)
		return nil, err
	}

	if jadzia.Classify(tree) == jadzia.KindEmpty {
		r.Issues = append(r.Issues, Issue{
			Kind:     IssueEmpty,
			Text:     "file contains no rules",
			Severity: SeverityWarning,
			Pos:      IssuePos{Filename: file},
		})
	}
	return tree, nil
}

func (r *Result) convertFailed(file string, err error) error {
	r.Issues = append(r.Issues, Issue{
		Kind:     IssueConvert,
		Text:     err.Error(),
		Severity: SeverityError,
		Pos:      IssuePos{Filename: file},
	})
	return fmt.Errorf("%s: %w", file, err)
}

// emit writes content to path unless it is already there. In check mode it
// only records a stale issue.
func (r *Result) emit(cfg Config, path string, content []byte) error {
	r.Outputs = append(r.Outputs, path)

	// #nosec G304 - output path derived from configuration
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		r.FilesUnchanged++
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read %s: %w", path, err)
	}

	if cfg.Check {
		issue := Issue{
			Kind:     IssueStale,
			Severity: SeverityError,
			Pos:      IssuePos{Filename: path},
		}
		if err != nil {
			issue.Text = "output is missing"
		} else {
			issue.Text = "output is out of date"
			issue.Diff = lineDiff(string(existing), string(content))
		}
		r.Issues = append(r.Issues, issue)
		return fmt.Errorf("%s: %s", path, issue.Text)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	r.FilesWritten++
	cfg.Logger.Debug("Wrote output", zap.String("file", path))
	return nil
}

// render compiles a rule tree in the configured output format.
func render(cfg Config, tree jadzia.Node) ([]byte, error) {
	switch cfg.Format {
	case FormatJSON:
		obj, err := jadzia.ToObject(tree, cfg.Options...)
		if err != nil {
			return nil, err
		}
		data, err := obj.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("indent json: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil

	case FormatYAML:
		obj, err := jadzia.ToObject(tree, cfg.Options...)
		if err != nil {
			return nil, err
		}
		return rulefile.Encode(obj)

	default:
		css, err := jadzia.ToCSS(tree, cfg.Options...)
		if err != nil {
			return nil, err
		}
		if css == "" {
			return nil, nil
		}
		return []byte(css + "\n"), nil
	}
}

// sourceLines returns the 1-based line of data for issue display.
func sourceLines(data []byte, line int) []string {
	lines := strings.Split(string(data), "\n")
	if line < 1 || line > len(lines) {
		return nil
	}
	return []string{strings.TrimRight(lines[line-1], "\r")}
}
