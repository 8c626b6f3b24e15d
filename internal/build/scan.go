package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped as hidden, by .gitignore or because they are build outputs
}

// scanner filters glob matches for one source directory.
type scanner struct {
	sourceDir string
	outputDir string // absolute, empty when outputs sit next to sources
	bundle    string // absolute, empty without a bundle
	gitignore *ignore.GitIgnore
}

func newScanner(cfg Config) *scanner {
	s := &scanner{sourceDir: cfg.SourceDir}

	// No .gitignore is fine
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(cfg.SourceDir, ".gitignore")); err == nil {
		s.gitignore = gi
	}

	if cfg.OutputDir != "" {
		if abs, err := filepath.Abs(cfg.OutputDir); err == nil {
			s.outputDir = abs
		}
	}
	if cfg.Bundle != "" {
		if abs, err := filepath.Abs(cfg.Bundle); err == nil {
			s.bundle = abs
		}
	}
	return s
}

// shouldSkipFile reports whether a matched file is excluded from the build.
func (s *scanner) shouldSkipFile(path string) bool {
	if isHidden(s.sourceDir, path) {
		return true
	}

	if s.gitignore != nil {
		if rel, err := filepath.Rel(s.sourceDir, path); err == nil && s.gitignore.MatchesPath(filepath.ToSlash(rel)) {
			return true
		}
	}

	// Generated JSON/YAML outputs must not be compiled again
	if abs, err := filepath.Abs(path); err == nil {
		if s.outputDir != "" && isWithin(abs, s.outputDir) {
			return true
		}
		if s.bundle != "" && abs == s.bundle {
			return true
		}
	}

	return false
}

// isHidden reports whether any element of path below dir starts with a dot,
// which covers .jadzia.yaml and tool directories such as .cache.
func isHidden(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// Discover expands the include patterns of cfg into rule files, deduplicated
// and in natural order.
func Discover(cfg Config) ([]string, ScanStats, error) {
	cfg = cfg.withDefaults()
	s := newScanner(cfg)

	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range cfg.Includes {
		fullPattern := filepath.Join(cfg.SourceDir, pattern)

		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Sort(natural.StringSlice(files))
	return files, stats, nil
}

// matchesIncludes reports whether path, relative to the source dir, matches
// any include pattern.
func matchesIncludes(cfg Config, path string) bool {
	rel, err := filepath.Rel(cfg.SourceDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range cfg.Includes {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), rel); ok {
			return true
		}
	}
	return false
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// outputPath maps a rule file to the file it compiles to.
func outputPath(cfg Config, file string) string {
	name := strings.TrimSuffix(file, filepath.Ext(file)) + cfg.Format.Ext()
	if cfg.OutputDir == "" {
		return name
	}
	rel, err := filepath.Rel(cfg.SourceDir, name)
	if err != nil {
		rel = filepath.Base(name)
	}
	return filepath.Join(cfg.OutputDir, rel)
}
