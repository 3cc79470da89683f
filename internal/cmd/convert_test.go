package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	writeFile(t, file, "# A")

	got, err := readSources(nil, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, []source{{Content: "from stdin"}}, got)

	got, err = readSources([]string{file, "-"}, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, []source{{Path: file, Content: "# A"}, {Content: "x"}}, got)

	_, err = readSources([]string{filepath.Join(dir, "missing.md")}, nil)
	assert.Error(t, err)
}

func TestConvertSources(t *testing.T) {
	t.Parallel()

	srcs := make([]source, 20)
	for i := range srcs {
		srcs[i] = source{Path: fmt.Sprintf("f%d.md", i), Content: fmt.Sprintf("# Doc %d", i)}
	}

	got, err := convertSources(context.Background(), srcs, false, 4, nil)
	require.NoError(t, err)
	require.Len(t, got, len(srcs))
	for i, r := range got {
		assert.Equal(t, srcs[i].Path, r.Path)
		assert.Equal(t, fmt.Sprintf("h1. Doc %d\n", i), r.Body())
	}
}

func TestConvertSources_FrontMatter(t *testing.T) {
	t.Parallel()

	got, err := convertSources(context.Background(), []source{
		{Path: "a.md", Content: "---\ntitle: T\nissue: PRJ-1\n---\ntext"},
	}, false, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "T", got[0].Title)
	assert.Equal(t, "PRJ-1", got[0].Issue)
	assert.Equal(t, "h1. T\n\ntext\n", got[0].Body())
}

func TestConvertSources_FromHTML(t *testing.T) {
	t.Parallel()

	got, err := convertSources(context.Background(), []source{
		{Content: "<h2>Hi</h2><p>a <em>b</em></p>"},
	}, true, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "h2. Hi\n\na _b_\n", got[0].Body())
}

func TestConvertSources_Error(t *testing.T) {
	t.Parallel()

	_, err := convertSources(context.Background(), []source{
		{Path: "ok.md", Content: "ok"},
		{Path: "bad.md", Content: "---\ntitle: x\n"},
	}, false, 2, nil)
	assert.ErrorContains(t, err, "bad.md")
}

func TestTargetPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outDir string
		path   string
		want   string
	}{
		{outDir: "", path: filepath.Join("docs", "a.md"), want: filepath.Join("docs", "a.jira")},
		{outDir: "out", path: filepath.Join("docs", "a.md"), want: filepath.Join("out", "a.jira")},
		{outDir: "", path: "README", want: "README.jira"},
		{outDir: "", path: "v1.2.markdown", want: "v1.2.jira"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, targetPath(tt.outDir, tt.path))
		})
	}
}

func TestWriteResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	results := []*converted{
		{source: source{Path: filepath.Join(dir, "a.md")}, Markup: "h1. A\n\n"},
		{source: source{Path: filepath.Join(dir, "b.md")}, Markup: "*b*\n\n"},
	}

	var status bytes.Buffer
	require.NoError(t, writeResults(&status, results, out))

	a, err := os.ReadFile(filepath.Join(out, "a.jira"))
	require.NoError(t, err)
	assert.Equal(t, "h1. A\n", string(a))
	b, err := os.ReadFile(filepath.Join(out, "b.jira"))
	require.NoError(t, err)
	assert.Equal(t, "*b*\n", string(b))
	assert.Contains(t, status.String(), "a.jira")

	err = writeResults(&status, []*converted{{Markup: "x"}}, out)
	assert.Error(t, err)
}

func TestDiffResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	writeFile(t, filepath.Join(dir, "a.jira"), "h1. Old\n")

	var buf bytes.Buffer
	err := diffResults(&buf, []*converted{{source: source{Path: src}, Markup: "h1. New"}}, "", false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "-h1. Old")
	assert.Contains(t, buf.String(), "+h1. New")

	buf.Reset()
	err = diffResults(&buf, []*converted{{source: source{Path: src}, Markup: "h1. Old\n\n"}}, "", false)
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	buf.Reset()
	err = diffResults(&buf, []*converted{{source: source{Path: filepath.Join(dir, "new.md")}, Markup: "x"}}, "", false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "--- /dev/null")
}

func TestFindMarkdownFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.MARKDOWN"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "d.md"), "")

	got, err := findMarkdownFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "sub", "b.MARKDOWN"),
	}, got)
}

func TestConvertCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "one.md"), "use `x` and my__key")
	writeFile(t, filepath.Join(dir, "two.md"), "- a\n  - b")
	writeFile(t, filepath.Join(dir, ".md2jira.yml"), "render:\n  code_color: red\n")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"convert", "one.md", "two.md", "--out", "out"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		convertFlags.out = ""
	})

	require.NoError(t, rootCmd.Execute())

	one, err := os.ReadFile(filepath.Join(dir, "out", "one.jira"))
	require.NoError(t, err)
	assert.Equal(t, "use {color:red}{{x}}{color} and my\\_\\_key\n", string(one))
	two, err := os.ReadFile(filepath.Join(dir, "out", "two.jira"))
	require.NoError(t, err)
	assert.Equal(t, "* a\n** b\n", string(two))
	assert.Empty(t, stdout.String())
}
