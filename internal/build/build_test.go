package build

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/yacobolo/jadzia"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuild(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, src, "a.yaml", "b:\n  color: red\n")
	writeFile(t, src, "sub/c.json", `{"i": {"margin": 2}}`)
	writeFile(t, src, "draft.yaml", "x:\n  color: blue\n")
	writeFile(t, src, ".gitignore", "draft.yaml\n")

	cfg := Config{SourceDir: src, OutputDir: out}

	result, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.FilesSkipped)
	assert.Equal(t, 2, result.FilesWritten)
	assert.Empty(t, result.Issues)

	assert.Equal(t, "b {\n    color: red;\n}\n", readFile(t, filepath.Join(out, "a.css")))
	assert.Equal(t, "i {\n    margin: 2px;\n}\n", readFile(t, filepath.Join(out, "sub", "c.css")))
	assert.NoFileExists(t, filepath.Join(out, "draft.css"))

	// Nothing changed, nothing written
	result, err = Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesWritten)
	assert.Equal(t, 2, result.FilesUnchanged)
}

func TestBuildNextToSources(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "a.yml", "b:\n  zIndex: 2\n")

	_, err := Build(Config{SourceDir: src})
	require.NoError(t, err)
	assert.Equal(t, "b {\n    z-index: 2;\n}\n", readFile(t, filepath.Join(src, "a.css")))
}

func TestBuildOptions(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, src, "a.yaml", ".z:\n  width: 2\n\"#y\":\n  width: 1\n")

	_, err := Build(Config{
		SourceDir: src,
		OutputDir: out,
		Options:   []jadzia.Option{jadzia.WithUnit("rem"), jadzia.WithSort(true), jadzia.WithIndent(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, "#y {\n  width: 1rem;\n}\n.z {\n  width: 2rem;\n}\n", readFile(t, filepath.Join(out, "a.css")))
}

func TestBuildFormats(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "{\n  \"b i\": {\n    \"margin\": \"3px\"\n  }\n}\n"},
		{FormatYAML, "b i:\n  margin: 3px\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			src := t.TempDir()
			out := t.TempDir()
			writeFile(t, src, "a.yaml", "b:\n  i:\n    margin: 3\n")

			_, err := Build(Config{SourceDir: src, OutputDir: out, Format: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, filepath.Join(out, "a"+tt.format.Ext())))
		})
	}
}

func TestBuildObjectFormatsNeedOutputDir(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src := t.TempDir()
			rules := writeFile(t, src, "a"+format.Ext(), "b:\n  color: red\n")

			result, err := Build(Config{SourceDir: src, Format: format})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, "b:\n  color: red\n", readFile(t, rules))

			entries, err := os.ReadDir(src)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestBuildObjectFormatOutputsNotRecompiled(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "dist")
	writeFile(t, src, "a.yaml", "b:\n  margin: 3\n")
	cfg := Config{SourceDir: src, OutputDir: out, Format: FormatJSON}

	_, err := Build(cfg)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "a.json"))

	result, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.FilesSkipped)
	assert.Equal(t, 1, result.FilesUnchanged)
	assert.NoFileExists(t, filepath.Join(out, "dist", "a.json"))
}

func TestBuildBundleNotRecompiled(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "a.yaml", "a:\n  margin: 1\n")
	bundle := filepath.Join(src, "site.yaml")
	cfg := Config{SourceDir: src, Bundle: bundle, Format: FormatYAML}

	_, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "a:\n  margin: 1px\n", readFile(t, bundle))

	result, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.FilesUnchanged)
}

func TestBuildBundle(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "b.yaml", "b:\n  color: blue\n")
	writeFile(t, src, "a.yaml", "a:\n  color: red\n")
	bundle := filepath.Join(t.TempDir(), "site.css")

	result, err := Build(Config{
		SourceDir: src,
		Bundle:    bundle,
		Options:   []jadzia.Option{jadzia.WithIndent(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{bundle}, result.Outputs)
	assert.Equal(t, "a {\ncolor: red;\n}\nb {\ncolor: blue;\n}\n", readFile(t, bundle))
	assert.NoFileExists(t, filepath.Join(src, "a.css"))
}

func TestBuildBundleSkippedOnError(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "a.yaml", "a:\n  color: red\n")
	writeFile(t, src, "b.yaml", "b:\n  color: !brand x\n")
	bundle := filepath.Join(t.TempDir(), "site.css")

	result, err := Build(Config{SourceDir: src, Bundle: bundle})
	require.Error(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, filepath.Join(src, "b.yaml"), result.Issues[0].Pos.Filename)
	assert.NoFileExists(t, bundle)
}

func TestBuildIssues(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	bad := writeFile(t, src, "bad.yaml", "a:\n\tb: 1\n")
	tagged := writeFile(t, src, "tagged.yaml", "b:\n  color: !brand primary\n")
	empty := writeFile(t, src, "empty.yaml", "")
	writeFile(t, src, "good.yaml", "i:\n  color: red\n")

	result, err := Build(Config{SourceDir: src, OutputDir: out})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.True(t, errors.Is(err, jadzia.ErrUnsupportedValue))

	byFile := make(map[string]Issue)
	for _, issue := range result.Issues {
		byFile[issue.Pos.Filename] = issue
	}
	require.Len(t, byFile, 3)

	decode := byFile[bad]
	assert.Equal(t, IssueDecode, decode.Kind)
	assert.Equal(t, SeverityError, decode.Severity)
	assert.Equal(t, 2, decode.Pos.Line)
	assert.Equal(t, []string{"\tb: 1"}, decode.SourceLines)

	convert := byFile[tagged]
	assert.Equal(t, IssueConvert, convert.Kind)
	assert.Contains(t, convert.Text, `"b" > "color"`)

	warning := byFile[empty]
	assert.Equal(t, IssueEmpty, warning.Kind)
	assert.Equal(t, SeverityWarning, warning.Severity)

	assert.Equal(t, 2, result.Errors())
	assert.FileExists(t, filepath.Join(out, "good.css"))
	assert.FileExists(t, filepath.Join(out, "empty.css"))
}

func TestBuildCheck(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	rules := writeFile(t, src, "a.yaml", "b:\n  color: red\n")

	cfg := Config{SourceDir: src, OutputDir: out, Check: true}

	// Missing output
	result, err := Build(cfg)
	require.Error(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "output is missing", result.Issues[0].Text)
	assert.NoFileExists(t, filepath.Join(out, "a.css"))

	cfg.Check = false
	_, err = Build(cfg)
	require.NoError(t, err)

	cfg.Check = true
	result, err = Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stale())
	assert.Equal(t, 1, result.FilesUnchanged)

	require.NoError(t, os.WriteFile(rules, []byte("b:\n  color: blue\n"), 0o644))
	result, err = Build(cfg)
	require.Error(t, err)
	assert.Equal(t, 1, result.Stale())
	assert.Equal(t, "-    color: red;\n+    color: blue;\n", result.Issues[0].Diff)
	assert.Equal(t, "b {\n    color: red;\n}\n", readFile(t, filepath.Join(out, "a.css")))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"css", "json", "yaml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, "."+name, f.Ext())
	}

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSS, f)

	_, err = ParseFormat("scss")
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	cfg := Config{SourceDir: "styles", Format: FormatCSS}
	assert.Equal(t, filepath.Join("styles", "ui", "button.css"), outputPath(cfg, filepath.Join("styles", "ui", "button.yaml")))

	cfg.OutputDir = "dist"
	cfg.Format = FormatJSON
	assert.Equal(t, filepath.Join("dist", "ui", "button.json"), outputPath(cfg, filepath.Join("styles", "ui", "button.yaml")))
}
